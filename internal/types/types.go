package types

import "time"

// SessionState is the single durable editing session: chosen language,
// source text and program input.
type SessionState struct {
	Language string `json:"language" yaml:"language"`
	Code     string `json:"code" yaml:"code"`
	Stdin    string `json:"stdin" yaml:"stdin"`
}

// ExecutionRequest is the body sent to the remote execution service.
// It is built fresh from a SessionState for every accepted run.
type ExecutionRequest struct {
	Lang  string `json:"lang"`
	Code  string `json:"code"`
	Stdin string `json:"stdin"`
}

// NewExecutionRequest builds the wire request from a session snapshot
func NewExecutionRequest(s SessionState) ExecutionRequest {
	return ExecutionRequest{
		Lang:  s.Language,
		Code:  s.Code,
		Stdin: s.Stdin,
	}
}

// ExecutionResponse is the decoded reply of the execution service
type ExecutionResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResultKind tags an ExecutionResult
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultFailure
)

func (k ResultKind) String() string {
	if k == ResultFailure {
		return "failure"
	}
	return "success"
}

// Result is the tagged execution outcome shown to the user.
// Exactly one of Output (success) or Message (failure) is meaningful.
type Result struct {
	Kind    ResultKind `json:"-" yaml:"-"`
	Outcome string     `json:"outcome" yaml:"outcome"`
	Output  string     `json:"output,omitempty" yaml:"output,omitempty"`
	Message string     `json:"message,omitempty" yaml:"message,omitempty"`

	// Cause is the internal reason for a failure. It is logged and
	// recorded in history but never displayed.
	Cause error `json:"-" yaml:"-"`
}

// Success returns a successful result carrying the program output verbatim
func Success(output string) Result {
	return Result{Kind: ResultSuccess, Outcome: ResultSuccess.String(), Output: output}
}

// Failure returns a failed result with a user-facing message
func Failure(message string, cause error) Result {
	return Result{Kind: ResultFailure, Outcome: ResultFailure.String(), Message: message, Cause: cause}
}

// IsFailure reports whether the result should be rendered with error styling
func (r Result) IsFailure() bool {
	return r.Kind == ResultFailure
}

// Text returns whichever of output or message applies to the result
func (r Result) Text() string {
	if r.IsFailure() {
		return r.Message
	}
	return r.Output
}

// RunStatus is the execution dispatcher state
type RunStatus int

const (
	StatusIdle RunStatus = iota
	StatusRunning
)

func (s RunStatus) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "idle"
}

// HistoryEntry is a finished run as stored in the history database
type HistoryEntry struct {
	ID        string        `json:"id" yaml:"id"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Language  string        `json:"language" yaml:"language"`
	Code      string        `json:"code" yaml:"code"`
	Stdin     string        `json:"stdin" yaml:"stdin"`
	Outcome   string        `json:"outcome" yaml:"outcome"`
	Output    string        `json:"output,omitempty" yaml:"output,omitempty"`
	Message   string        `json:"message,omitempty" yaml:"message,omitempty"`
	Cause     string        `json:"cause,omitempty" yaml:"cause,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}
