package history

import (
	"fmt"
	"time"

	"github.com/studiowebux/voidrunner/internal/executor"
)

// Stats aggregates the recorded runs of one language
type Stats struct {
	Language        string    `json:"language" yaml:"language"`
	TotalRuns       int       `json:"total_runs" yaml:"total_runs"`
	SuccessCount    int       `json:"success_count" yaml:"success_count"`
	FailureCount    int       `json:"failure_count" yaml:"failure_count"`
	TransportErrors int       `json:"transport_errors" yaml:"transport_errors"` // service unreachable or bad reply
	AvgDurationMs   float64   `json:"avg_duration_ms" yaml:"avg_duration_ms"`
	MinDurationMs   int64     `json:"min_duration_ms" yaml:"min_duration_ms"`
	MaxDurationMs   int64     `json:"max_duration_ms" yaml:"max_duration_ms"`
	LastRun         time.Time `json:"last_run" yaml:"last_run"`
}

// Stats returns per-language aggregates, most used language first
func (m *Manager) Stats() ([]Stats, error) {
	query := `
		SELECT
			language,
			COUNT(*) as total_runs,
			SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN outcome = 'failure' THEN 1 ELSE 0 END) as failure_count,
			SUM(CASE WHEN outcome = 'failure' AND message = ? THEN 1 ELSE 0 END) as transport_errors,
			AVG(duration_ms) as avg_duration,
			MIN(duration_ms) as min_duration,
			MAX(duration_ms) as max_duration,
			MAX(timestamp) as last_run
		FROM history
		GROUP BY language
		ORDER BY total_runs DESC, language ASC
	`

	rows, err := m.db.Query(query, executor.TransportErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []Stats
	for rows.Next() {
		var s Stats
		var lastRun string
		if err := rows.Scan(
			&s.Language,
			&s.TotalRuns,
			&s.SuccessCount,
			&s.FailureCount,
			&s.TransportErrors,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&lastRun,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		s.LastRun, err = time.Parse(timestampFormat, lastRun)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", lastRun, err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
