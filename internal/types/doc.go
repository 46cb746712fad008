/*
Package types defines the value types shared across voidrunner.

# Session

SessionState is the one durable editing session (language, code, stdin).
Its JSON form is exactly what the session store persists:

	{"language":"cpp","code":"","stdin":""}

# Execution

ExecutionRequest and ExecutionResponse mirror the remote execution
service contract. Result is the tagged outcome the UI renders: either a
success carrying the program output or a failure carrying a message.
RunStatus is the dispatcher state (idle or running).

# History

HistoryEntry is a finished run as stored in the history database.
*/
package types
