package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/voidrunner/internal/history"
	"github.com/studiowebux/voidrunner/internal/languages"
	"github.com/studiowebux/voidrunner/internal/types"
	"gopkg.in/yaml.v3"
)

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorDim   = "\x1b[2m"
)

// RunReport is the structured form of a finished run
type RunReport struct {
	ID       string  `json:"id" yaml:"id"`
	Language string  `json:"language" yaml:"language"`
	Outcome  string  `json:"outcome" yaml:"outcome"`
	Output   *string `json:"output,omitempty" yaml:"output,omitempty"`
	Message  string  `json:"message,omitempty" yaml:"message,omitempty"`
	Duration string  `json:"duration" yaml:"duration"`
}

func marshal(v any, format string) (string, bool, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", true, err
		}
		return string(data) + "\n", true, nil

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", true, err
		}
		return string(data), true, nil

	case "", "text":
		return "", false, nil

	default:
		return "", true, fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
}

// FormatRun formats a run result. Text output is the program output
// verbatim, or the failure message; with color a status line comes first.
func FormatRun(id, language string, elapsed time.Duration, res types.Result, format string, color bool) (string, error) {
	report := RunReport{
		ID:       id,
		Language: language,
		Outcome:  res.Outcome,
		Message:  res.Message,
		Duration: elapsed.Round(time.Millisecond).String(),
	}
	if !res.IsFailure() {
		out := res.Output
		report.Output = &out
	}
	if s, done, err := marshal(report, format); done {
		return s, err
	}

	var sb strings.Builder
	if color {
		statusColor := colorGreen
		if res.IsFailure() {
			statusColor = colorRed
		}
		sb.WriteString(fmt.Sprintf("%s%s%s %s(%s, %s)%s\n",
			statusColor, res.Outcome, colorReset, colorDim, language, report.Duration, colorReset))
	}

	if res.IsFailure() {
		if color {
			sb.WriteString(fmt.Sprintf("%sError: %s%s\n", colorRed, res.Message, colorReset))
		} else {
			sb.WriteString(fmt.Sprintf("Error: %s\n", res.Message))
		}
		return sb.String(), nil
	}

	sb.WriteString(res.Output)
	if res.Output != "" && !strings.HasSuffix(res.Output, "\n") && color {
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// FormatSession formats the stored session
func FormatSession(s types.SessionState, c *languages.Catalog, format string) (string, error) {
	if out, done, err := marshal(s, format); done {
		return out, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Language: %s (%s)\n", c.DisplayName(s.Language), s.Language))
	sb.WriteString(fmt.Sprintf("Code:     %s\n", describeText(s.Code)))
	sb.WriteString(fmt.Sprintf("Stdin:    %s\n", describeText(s.Stdin)))
	if s.Code != "" {
		sb.WriteString("\n")
		sb.WriteString(s.Code)
		if !strings.HasSuffix(s.Code, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func describeText(s string) string {
	if s == "" {
		return "(empty)"
	}
	lines := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		lines++
	}
	if lines == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", lines)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// FormatLanguages lists the catalog, marking current
func FormatLanguages(c *languages.Catalog, current, format string) (string, error) {
	if out, done, err := marshal(c.All(), format); done {
		return out, err
	}

	t := newTable("", "ID", "NAME", "EXTENSION")
	for _, d := range c.All() {
		mark := ""
		if d.ID == current {
			mark = "*"
		}
		t.Row(mark, d.ID, d.Name, d.Extension)
	}
	return t.String() + "\n", nil
}

// FormatHistory lists stored runs
func FormatHistory(entries []types.HistoryEntry, format string) (string, error) {
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	if out, done, err := marshal(entries, format); done {
		return out, err
	}

	if len(entries) == 0 {
		return "No runs recorded\n", nil
	}

	t := newTable("ID", "TIME", "LANGUAGE", "OUTCOME", "DURATION", "RESULT")
	for _, e := range entries {
		t.Row(
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Language,
			e.Outcome,
			e.Duration.Round(time.Millisecond).String(),
			firstLine(entryText(e), 40),
		)
	}
	return t.String() + "\n", nil
}

func entryText(e types.HistoryEntry) string {
	if e.Outcome == types.ResultFailure.String() {
		return e.Message
	}
	return e.Output
}

// FormatHistoryEntry shows one stored run with its full code, input and result
func FormatHistoryEntry(e types.HistoryEntry, format string) (string, error) {
	if out, done, err := marshal(e, format); done {
		return out, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", e.ID))
	sb.WriteString(fmt.Sprintf("Time:     %s\n", e.Timestamp.Local().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Language: %s\n", e.Language))
	sb.WriteString(fmt.Sprintf("Outcome:  %s\n", e.Outcome))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", e.Duration.Round(time.Millisecond)))
	writeSection(&sb, "Code", e.Code)
	writeSection(&sb, "Stdin", e.Stdin)
	if e.Outcome == types.ResultFailure.String() {
		writeSection(&sb, "Error", e.Message)
	} else {
		writeSection(&sb, "Output", e.Output)
	}
	return sb.String(), nil
}

func writeSection(sb *strings.Builder, title, body string) {
	sb.WriteString(fmt.Sprintf("\n--- %s ---\n", title))
	sb.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
}

func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit-3]) + "..."
	}
	return s
}

// FormatStats shows per-language run aggregates
func FormatStats(stats []history.Stats, format string) (string, error) {
	if stats == nil {
		stats = []history.Stats{}
	}
	if out, done, err := marshal(stats, format); done {
		return out, err
	}

	if len(stats) == 0 {
		return "No runs recorded\n", nil
	}

	t := newTable("LANGUAGE", "RUNS", "SUCCESS", "FAILURE", "NETWORK", "AVG", "MIN", "MAX", "LAST RUN")
	for _, s := range stats {
		t.Row(
			s.Language,
			fmt.Sprint(s.TotalRuns),
			fmt.Sprint(s.SuccessCount),
			fmt.Sprint(s.FailureCount),
			fmt.Sprint(s.TransportErrors),
			fmt.Sprintf("%.0fms", s.AvgDurationMs),
			fmt.Sprintf("%dms", s.MinDurationMs),
			fmt.Sprintf("%dms", s.MaxDurationMs),
			s.LastRun.Local().Format("2006-01-02 15:04:05"),
		)
	}
	return t.String() + "\n", nil
}
