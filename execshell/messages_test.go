package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitshell/execshell"
)

func TestCommandMessageFormatterLifecycleMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		expectedStart   string
		expectedSuccess string
	}{
		{
			name: "clone_with_url",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"clone", "https://example.com/project.git"}},
			},
			expectedStart:   "Cloning https://example.com/project.git",
			expectedSuccess: "Cloned https://example.com/project.git",
		},
		{
			name: "switch_with_branch_and_directory",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"switch", "feature/login"}, WorkingDirectory: "/tmp/project"},
			},
			expectedStart:   "Switching to feature/login (in /tmp/project)",
			expectedSuccess: "Switched to feature/login (in /tmp/project)",
		},
		{
			name: "status_without_operands",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"status", "--porcelain", "--branch"}},
			},
			expectedStart:   "Reviewing status of repository contents",
			expectedSuccess: "Collected status of repository contents",
		},
		{
			name: "push_with_flags_before_remote",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"push", "--set-upstream", "origin", "main"}},
			},
			expectedStart:   "Pushing origin",
			expectedSuccess: "Pushed origin",
		},
		{
			name: "unrecognized_subcommand_falls_back",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"bisect", "start"}},
			},
			expectedStart:   "Running git bisect start",
			expectedSuccess: "Completed git bisect start",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedStart, formatter.BuildStartedMessage(testCase.command))
			require.Equal(testInstance, testCase.expectedSuccess, formatter.BuildSuccessMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	pushCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"push", "origin"}},
	}

	failureMessage := formatter.BuildFailureMessage(pushCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: repository not found"})
	require.Equal(testInstance, "Failed pushing origin (exit code 128: fatal: repository not found)", failureMessage)

	executionFailureMessage := formatter.BuildExecutionFailureMessage(pushCommand, errors.New("executable not found"))
	require.Equal(testInstance, "Error pushing origin: executable not found", executionFailureMessage)
}
