package executor

import (
	"errors"
	"fmt"

	"github.com/studiowebux/voidrunner/internal/types"
)

// ErrExecutionFailure marks a completed call where the program did not run
// successfully (compile or runtime error)
var ErrExecutionFailure = errors.New("execution failed")

const (
	// TransportErrorMessage is shown for every transport failure
	TransportErrorMessage = "Network or server error."
	// UnknownErrorMessage is shown when the service fails without a message
	UnknownErrorMessage = "Unknown error occurred."
)

// Classify turns a service reply (or transport error) into a Result.
// Transport details stay in Cause and never reach the message.
func Classify(resp *types.ExecutionResponse, err error) types.Result {
	if err != nil {
		if !errors.Is(err, ErrTransport) {
			err = fmt.Errorf("%w: %v", ErrTransport, err)
		}
		return types.Failure(TransportErrorMessage, err)
	}
	if resp == nil {
		return types.Failure(TransportErrorMessage, fmt.Errorf("%w: empty response", ErrTransport))
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = UnknownErrorMessage
		}
		return types.Failure(msg, ErrExecutionFailure)
	}
	return types.Success(resp.Output)
}
