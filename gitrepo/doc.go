// Package gitrepo wraps the external git command-line tool with typed inputs
// and structured results. It shells out for every operation, parses the
// textual output into Go values, and classifies failures into a small error
// taxonomy; it implements no version-control logic of its own.
//
// Repository is the synchronous facade; AsyncRepository mirrors it with
// channel-based results. Both route every invocation through the execshell
// package with terminal prompts disabled so a missing credential fails fast
// instead of hanging.
package gitrepo
