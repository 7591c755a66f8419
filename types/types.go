// Package types defines the shared data structures for the termcore engine.
// This package contains only type definitions, no behavior.
package types

// Status is the result code a command handler returns. Zero means success;
// anything else is handler-defined failure. The engine never interprets a
// handler's status beyond relaying it to the post-dispatch hook.
type Status uint8

const (
	// StatusOK indicates the handler completed successfully.
	StatusOK Status = 0
	// StatusError is the generic failure code used by the engine itself
	// (unknown command, direct-mode miss, help usage error).
	StatusError Status = 1
)

// Command is the raw name/args pair passed to a catch-all handler when no
// registered binding matched the submitted command (or the matched binding
// had no handler).
type Command struct {
	Name string
	Args string
}
