package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studiowebux/voidrunner/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		resp      *types.ExecutionResponse
		err       error
		wantKind  types.ResultKind
		wantText  string
		wantCause error
	}{
		{
			name:     "success with output",
			resp:     &types.ExecutionResponse{Success: true, Output: "5\n"},
			wantKind: types.ResultSuccess,
			wantText: "5\n",
		},
		{
			name:     "success with empty output",
			resp:     &types.ExecutionResponse{Success: true, Output: ""},
			wantKind: types.ResultSuccess,
			wantText: "",
		},
		{
			name:     "success ignores error field",
			resp:     &types.ExecutionResponse{Success: true, Output: "ok", Error: "warning"},
			wantKind: types.ResultSuccess,
			wantText: "ok",
		},
		{
			name:      "compile error verbatim",
			resp:      &types.ExecutionResponse{Success: false, Error: "Compile Error"},
			wantKind:  types.ResultFailure,
			wantText:  "Compile Error",
			wantCause: ErrExecutionFailure,
		},
		{
			name:      "failure without message",
			resp:      &types.ExecutionResponse{Success: false},
			wantKind:  types.ResultFailure,
			wantText:  UnknownErrorMessage,
			wantCause: ErrExecutionFailure,
		},
		{
			name:      "transport error is generic",
			err:       errors.New("dial tcp 10.0.0.1:443: connect: connection refused"),
			wantKind:  types.ResultFailure,
			wantText:  TransportErrorMessage,
			wantCause: ErrTransport,
		},
		{
			name:      "nil response",
			wantKind:  types.ResultFailure,
			wantText:  TransportErrorMessage,
			wantCause: ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.resp, tt.err)

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantText, got.Text())
			if tt.wantCause != nil {
				assert.ErrorIs(t, got.Cause, tt.wantCause)
			} else {
				assert.NoError(t, got.Cause)
			}
		})
	}
}

func TestClassify_TransportDetailsNotLeaked(t *testing.T) {
	got := Classify(nil, errors.New("x509: certificate signed by unknown authority"))

	assert.NotContains(t, got.Message, "x509")
	assert.Contains(t, got.Cause.Error(), "x509")
	assert.Empty(t, got.Output)
}
