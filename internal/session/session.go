package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/studiowebux/voidrunner/internal/languages"
	"github.com/studiowebux/voidrunner/internal/logging"
	"github.com/studiowebux/voidrunner/internal/storage"
	"github.com/studiowebux/voidrunner/internal/types"
)

// DefaultKey is the storage key holding the serialized session
const DefaultKey = "editorState"

// ErrCorruptPersistence marks a stored session that could not be used
var ErrCorruptPersistence = errors.New("corrupt persisted session")

// Patch is a partial session update. Nil fields are left unchanged;
// a pointer to "" clears the field.
type Patch struct {
	Language *string
	Code     *string
	Stdin    *string
}

// Value returns a pointer to s for building patches
func Value(s string) *string {
	return &s
}

// Manager owns the single session record and keeps it in sync with storage
type Manager struct {
	mu      sync.Mutex
	kv      storage.KV
	catalog *languages.Catalog
	key     string
	logger  *slog.Logger
	state   types.SessionState
}

// Option configures a Manager
type Option func(*Manager)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithLogger sets the logger used for hydrate diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a session manager. Call Hydrate before use.
func NewManager(kv storage.KV, catalog *languages.Catalog, opts ...Option) *Manager {
	m := &Manager{
		kv:      kv,
		catalog: catalog,
		key:     DefaultKey,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = m.Default()
	return m
}

// Default returns the hard-coded startup session
func (m *Manager) Default() types.SessionState {
	return types.SessionState{
		Language: m.catalog.Primary().ID,
		Code:     "",
		Stdin:    "",
	}
}

// Hydrate loads the session from storage. Missing or unusable data yields
// the default session; it never fails.
func (m *Manager) Hydrate() types.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok, err := m.kv.Read(m.key)
	switch {
	case err != nil:
		m.logger.Warn("session storage unreadable, using default", "key", m.key, "error", err)
		m.state = m.Default()
	case !ok:
		m.logger.Debug("no stored session, using default", "key", m.key)
		m.state = m.Default()
	default:
		state, err := m.decode(raw)
		if err != nil {
			m.logger.Warn("stored session ignored, using default", "key", m.key, "error", err)
			m.state = m.Default()
		} else {
			m.state = state
		}
	}
	return m.state
}

// decode parses and validates a stored session
func (m *Manager) decode(raw string) (types.SessionState, error) {
	var stored struct {
		Language *string `json:"language"`
		Code     *string `json:"code"`
		Stdin    *string `json:"stdin"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return types.SessionState{}, fmt.Errorf("%w: %v", ErrCorruptPersistence, err)
	}

	var missing []string
	if stored.Language == nil {
		missing = append(missing, "language")
	}
	if stored.Code == nil {
		missing = append(missing, "code")
	}
	if stored.Stdin == nil {
		missing = append(missing, "stdin")
	}
	if len(missing) > 0 {
		return types.SessionState{}, fmt.Errorf("%w: missing %s", ErrCorruptPersistence, strings.Join(missing, ", "))
	}

	if !m.catalog.Has(*stored.Language) {
		return types.SessionState{}, fmt.Errorf("%w: unknown language %q", ErrCorruptPersistence, *stored.Language)
	}

	return types.SessionState{
		Language: *stored.Language,
		Code:     *stored.Code,
		Stdin:    *stored.Stdin,
	}, nil
}

// State returns the current session snapshot
func (m *Manager) State() types.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Update merges p into the session and writes the full result to storage.
// If the write fails the in-memory session is left unchanged.
func (m *Manager) Update(p Patch) (types.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.state
	if p.Language != nil {
		if _, err := m.catalog.Lookup(*p.Language); err != nil {
			return m.state, err
		}
		next.Language = *p.Language
	}
	if p.Code != nil {
		next.Code = *p.Code
	}
	if p.Stdin != nil {
		next.Stdin = *p.Stdin
	}

	return m.commit(next)
}

// SwitchLanguage changes the language. An empty editor is seeded with the
// language's starter snippet; existing code is never replaced.
func (m *Manager) SwitchLanguage(id string) (types.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.catalog.Lookup(id); err != nil {
		return m.state, err
	}

	next := m.state
	next.Language = id
	if next.Code == "" {
		next.Code = m.catalog.DefaultSnippetFor(id)
	}

	return m.commit(next)
}

// Reset writes the default session
func (m *Manager) Reset() (types.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commit(m.Default())
}

// commit persists next and, only on success, makes it current.
// Caller holds m.mu.
func (m *Manager) commit(next types.SessionState) (types.SessionState, error) {
	data, err := Encode(next)
	if err != nil {
		return m.state, err
	}
	if err := m.kv.Write(m.key, data); err != nil {
		return m.state, fmt.Errorf("failed to save session: %w", err)
	}
	m.state = next
	return m.state, nil
}

// Encode serializes a session the way it is persisted
func Encode(s types.SessionState) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
