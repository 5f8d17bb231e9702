// Package execshell provides structured helpers for invoking the external git
// command-line tool.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions gitshell uses to run
// git in a testable manner. A non-zero exit code is not an error at the runner
// layer; it is surfaced through ExecutionResult and converted into
// CommandFailedError by ShellExecutor so callers can classify routine git
// failures without losing the captured output.
package execshell
