package gitrepo

import (
	"strings"

	"github.com/temirov/gitshell/execshell"
)

// classificationRule maps fragments of git's diagnostic output to an
// OperationErrorKind. Rules are evaluated in order; the first fragment match
// wins, so narrower diagnostics must precede broader ones.
type classificationRule struct {
	kind           OperationErrorKind
	fragments      []string
	inspectsStdout bool
}

// Fragments come from git's own porcelain diagnostics and common hosting
// provider responses. Matching is case-insensitive and best effort: anything
// unmatched falls through to OperationErrorCommandFailed.
var failureClassificationRules = []classificationRule{
	{
		kind:      OperationErrorNotARepository,
		fragments: []string{"not a git repository"},
	},
	{
		kind: OperationErrorMergeConflict,
		fragments: []string{
			"merge conflict",
			"after resolving the conflicts",
			"needs merge",
			"could not apply",
		},
	},
	{
		kind: OperationErrorAuthenticationFailed,
		fragments: []string{
			"authentication failed",
			"could not read username",
			"could not read password",
			"permission denied (publickey)",
			"invalid credentials",
		},
	},
	{
		kind: OperationErrorNothingToCommit,
		fragments: []string{
			"nothing to commit",
			"no changes added to commit",
		},
		inspectsStdout: true,
	},
	{
		kind: OperationErrorRemoteNotFound,
		fragments: []string{
			"no such remote",
			"repository not found",
			"does not appear to be a git repository",
		},
	},
	{
		kind: OperationErrorBranchAlreadyExists,
		fragments: []string{
			"branch named",
			"branch already exists",
		},
	},
	{
		kind: OperationErrorUnknownRevision,
		fragments: []string{
			"unknown revision",
			"bad revision",
			"did not match any file(s) known to git",
			"pathspec",
			"invalid reference",
			"bad object",
		},
	},
}

func classifyCommandFailure(details execshell.CommandDetails, result execshell.ExecutionResult) *OperationError {
	operationError := &OperationError{
		Kind:      OperationErrorCommandFailed,
		Command:   string(execshell.CommandGit),
		Arguments: append([]string(nil), details.Arguments...),
		ExitCode:  result.ExitCode,
		Stderr:    result.StandardError,
	}

	loweredStandardError := strings.ToLower(result.StandardError)
	loweredStandardOutput := strings.ToLower(result.StandardOutput)

	for _, rule := range failureClassificationRules {
		for _, fragment := range rule.fragments {
			if strings.Contains(loweredStandardError, fragment) {
				operationError.Kind = rule.kind
				return operationError
			}
			if rule.inspectsStdout && strings.Contains(loweredStandardOutput, fragment) {
				operationError.Kind = rule.kind
				return operationError
			}
		}
	}

	return operationError
}
