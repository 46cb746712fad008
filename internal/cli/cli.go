package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/voidrunner/internal/app"
	"github.com/studiowebux/voidrunner/internal/languages"
	"github.com/studiowebux/voidrunner/internal/session"
	"github.com/studiowebux/voidrunner/internal/types"
)

// RunOptions contains options for running the session in CLI mode
type RunOptions struct {
	FilePath     string // replaces the session code
	Language     string // replaces the session language
	StdinPath    string // replaces the session stdin, "-" reads Stdin
	OutputFormat string // json, yaml, text
	Color        bool

	Stdin io.Reader
	Out   io.Writer
}

// Run applies the overrides to the stored session, executes it once and
// prints the result. Overrides are persisted like any other edit.
func Run(ctx context.Context, a *app.App, opts RunOptions) (types.Result, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if _, err := ApplyEdits(a, EditOptions{
		FilePath:  opts.FilePath,
		Language:  opts.Language,
		StdinPath: opts.StdinPath,
		Stdin:     opts.Stdin,
	}); err != nil {
		return types.Result{}, err
	}

	d := a.NewDispatcher()
	job, ok := d.Start(a.Session.State())
	if !ok {
		return types.Result{}, errors.New("a run is already in progress")
	}
	res := job.Run(ctx)

	output, err := FormatRun(job.ID, job.Session.Language, job.Duration(), res, opts.OutputFormat, opts.Color)
	if err != nil {
		return res, fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprint(opts.Out, output)

	return res, nil
}

// EditOptions are session overrides read from the command line
type EditOptions struct {
	FilePath  string
	Code      *string
	Language  string
	StdinPath string
	Stdin     io.Reader
}

// ApplyEdits writes the requested overrides into the session.
// A language without new code goes through SwitchLanguage so an empty
// editor gets the starter snippet. A file whose extension maps to a
// language selects it unless a language was given.
func ApplyEdits(a *app.App, opts EditOptions) (types.SessionState, error) {
	var patch session.Patch

	code := opts.Code
	if opts.FilePath != "" {
		data, err := os.ReadFile(opts.FilePath)
		if err != nil {
			return a.Session.State(), fmt.Errorf("failed to read source: %w", err)
		}
		s := string(data)
		code = &s

		if opts.Language == "" {
			if d, err := a.Catalog.ByExtension(strings.ToLower(filepath.Ext(opts.FilePath))); err == nil {
				patch.Language = session.Value(d.ID)
			}
		}
	}
	patch.Code = code

	if opts.Language != "" {
		if err := checkLanguage(a.Catalog, opts.Language); err != nil {
			return a.Session.State(), err
		}
		patch.Language = session.Value(opts.Language)
	}

	if opts.StdinPath != "" {
		input, err := readInput(opts.StdinPath, opts.Stdin)
		if err != nil {
			return a.Session.State(), err
		}
		patch.Stdin = &input
	}

	if patch.Language != nil && patch.Code == nil {
		if _, err := a.Session.SwitchLanguage(*patch.Language); err != nil {
			return a.Session.State(), err
		}
		patch.Language = nil
	}

	if patch.Language == nil && patch.Code == nil && patch.Stdin == nil {
		return a.Session.State(), nil
	}
	return a.Session.Update(patch)
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin file: %w", err)
	}
	return string(data), nil
}

// checkLanguage returns ErrNotFound with "did you mean" hints
func checkLanguage(c *languages.Catalog, id string) error {
	if _, err := c.Lookup(id); err != nil {
		if hints := c.Suggest(id); len(hints) > 0 {
			return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hints, ", "))
		}
		return fmt.Errorf("%w (available: %s)", err, strings.Join(c.IDs(), ", "))
	}
	return nil
}
