package gitrepo

import (
	"errors"
	"fmt"
	"strings"
)

const (
	validationErrorTemplateConstant        = "invalid %s %q: %s"
	parseErrorTemplateConstant             = "unable to parse %s output: %s"
	parseErrorLineTemplateConstant         = "unable to parse %s output: %s (line %q)"
	processErrorTemplateConstant           = "unable to run %s: %s"
	operationErrorTemplateConstant         = "git %s failed (%s, exit code %d)%s"
	operationErrorStderrTemplateConstant   = ": %s"
	operationErrorNoArgumentsLabelConstant = "git"
)

// OperationErrorKind identifies the classified cause of a failed git command.
type OperationErrorKind string

const (
	// OperationErrorNotARepository indicates the working directory is not inside a git repository.
	OperationErrorNotARepository OperationErrorKind = "not_a_repository"
	// OperationErrorMergeConflict indicates the command stopped on conflicting changes.
	OperationErrorMergeConflict OperationErrorKind = "merge_conflict"
	// OperationErrorAuthenticationFailed indicates the remote rejected the provided credentials.
	OperationErrorAuthenticationFailed OperationErrorKind = "authentication_failed"
	// OperationErrorNothingToCommit indicates a commit was requested with no staged changes.
	OperationErrorNothingToCommit OperationErrorKind = "nothing_to_commit"
	// OperationErrorRemoteNotFound indicates the named remote or its repository does not exist.
	OperationErrorRemoteNotFound OperationErrorKind = "remote_not_found"
	// OperationErrorBranchAlreadyExists indicates branch creation collided with an existing name.
	OperationErrorBranchAlreadyExists OperationErrorKind = "branch_already_exists"
	// OperationErrorUnknownRevision indicates the requested revision could not be resolved.
	OperationErrorUnknownRevision OperationErrorKind = "unknown_revision"
	// OperationErrorCommandFailed is the fallback for failures no classification rule matched.
	OperationErrorCommandFailed OperationErrorKind = "command_failed"
)

// ValidationError reports typed input that violated a domain rule before any command ran.
type ValidationError struct {
	Subject string
	Rule    string
	Value   string
}

// Error describes the violated rule.
func (validationError *ValidationError) Error() string {
	return fmt.Sprintf(validationErrorTemplateConstant, validationError.Subject, validationError.Value, validationError.Rule)
}

// ParseError reports git output that did not match the expected shape.
type ParseError struct {
	Subject string
	Line    string
	Message string
}

// Error describes the malformed output, quoting the offending line when one is known.
func (parseError *ParseError) Error() string {
	if len(parseError.Line) == 0 {
		return fmt.Sprintf(parseErrorTemplateConstant, parseError.Subject, parseError.Message)
	}
	return fmt.Sprintf(parseErrorLineTemplateConstant, parseError.Subject, parseError.Message, parseError.Line)
}

// ProcessError reports a git process that could not be launched at all.
type ProcessError struct {
	Command  string
	Cause    error
	NotFound bool
}

// Error describes the launch failure.
func (processError *ProcessError) Error() string {
	return fmt.Sprintf(processErrorTemplateConstant, processError.Command, processError.Cause)
}

// Unwrap exposes the underlying launch failure.
func (processError *ProcessError) Unwrap() error {
	return processError.Cause
}

// OperationError reports a git command that ran and exited with a non-zero code.
type OperationError struct {
	Kind      OperationErrorKind
	Command   string
	Arguments []string
	ExitCode  int
	Stderr    string
}

// Error describes the failed command, its classification, and trimmed stderr.
func (operationError *OperationError) Error() string {
	commandLabel := operationErrorNoArgumentsLabelConstant
	if len(operationError.Arguments) > 0 {
		commandLabel = operationError.Arguments[0]
	}

	stderrSuffix := ""
	trimmedStderr := strings.TrimSpace(operationError.Stderr)
	if len(trimmedStderr) > 0 {
		stderrSuffix = fmt.Sprintf(operationErrorStderrTemplateConstant, trimmedStderr)
	}

	return fmt.Sprintf(operationErrorTemplateConstant, commandLabel, operationError.Kind, operationError.ExitCode, stderrSuffix)
}

func operationErrorHasKind(candidateError error, kind OperationErrorKind) bool {
	var operationError *OperationError
	if !errors.As(candidateError, &operationError) {
		return false
	}
	return operationError.Kind == kind
}

// IsNotARepository reports whether the error is an OperationError classified as NotARepository.
func IsNotARepository(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorNotARepository)
}

// IsMergeConflict reports whether the error is an OperationError classified as MergeConflict.
func IsMergeConflict(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorMergeConflict)
}

// IsAuthenticationFailed reports whether the error is an OperationError classified as AuthenticationFailed.
func IsAuthenticationFailed(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorAuthenticationFailed)
}

// IsNothingToCommit reports whether the error is an OperationError classified as NothingToCommit.
func IsNothingToCommit(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorNothingToCommit)
}

// IsRemoteNotFound reports whether the error is an OperationError classified as RemoteNotFound.
func IsRemoteNotFound(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorRemoteNotFound)
}

// IsBranchAlreadyExists reports whether the error is an OperationError classified as BranchAlreadyExists.
func IsBranchAlreadyExists(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorBranchAlreadyExists)
}

// IsUnknownRevision reports whether the error is an OperationError classified as UnknownRevision.
func IsUnknownRevision(candidateError error) bool {
	return operationErrorHasKind(candidateError, OperationErrorUnknownRevision)
}
