/*
Package executor sends the editing session to the remote execution service
and classifies the reply.

# Service Contract

The service receives a JSON POST:

	{"lang": "cpp", "code": "...", "stdin": "..."}

and answers:

	{"success": true, "output": "5\n"}
	{"success": false, "error": "Compile Error"}

# Classification

Classify maps every call to exactly one Result:
  - the call did not complete (network, unreadable or non-JSON body):
    Failure with TransportErrorMessage; transport details stay in Cause
  - success=false: Failure with the service error verbatim
    (UnknownErrorMessage when empty)
  - success=true: Success with the service output verbatim, including ""

# Dispatcher

Dispatcher is a two-state machine guarding the single in-flight run:

	Idle --Start--> Running --Job.Run--> Idle

Start while Running returns false and makes no call. An accepted Start
clears the previous result; Job.Run makes exactly one call, stores the
result, returns to Idle and then notifies the observer once.

There is no cancellation and, unless configured, no timeout. A hung call
keeps the dispatcher Running.

# Example Usage

	client := executor.NewClient(cfg.Endpoint)
	d := executor.NewDispatcher(client, executor.WithObserver(func(job *executor.Job, res types.Result) {
		fmt.Println(res.Text())
	}))

	if job, ok := d.Start(mgr.State()); ok {
		res := job.Run(ctx)
		_ = res
	}
*/
package executor
