package repo_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitshell/cmd/cli/repo"
	"github.com/temirov/gitshell/execshell"
	"github.com/temirov/gitshell/gitrepo"
)

const testRepositoryDirectoryConstant = "/tmp/project"

// subcommandStubExecutor answers each git subcommand with a canned stdout and
// records the details it received.
type subcommandStubExecutor struct {
	outputsBySubcommand map[string]string
	recordedDetails     []execshell.CommandDetails
}

func (executor *subcommandStubExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	return execshell.ExecutionResult{StandardOutput: executor.outputsBySubcommand[details.Arguments[0]]}, nil
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments ...string) string {
	outputBuffer := new(bytes.Buffer)
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs(arguments)

	require.NoError(testInstance, command.Execute())
	return outputBuffer.String()
}

func TestStatusCommandRendersYAML(testInstance *testing.T) {
	stubExecutor := &subcommandStubExecutor{
		outputsBySubcommand: map[string]string{
			"status": "## main...origin/main\n M worktree.go\n?? notes.txt\n",
		},
	}
	builder := repo.StatusCommandBuilder{GitExecutor: stubExecutor}
	statusCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	renderedOutput := executeCommand(testInstance, statusCommand, "--directory", testRepositoryDirectoryConstant)

	var decodedReport struct {
		Branch  string `yaml:"branch"`
		Clean   bool   `yaml:"clean"`
		Entries []struct {
			Path   string `yaml:"path"`
			Status string `yaml:"status"`
		} `yaml:"entries"`
	}
	require.NoError(testInstance, yaml.Unmarshal([]byte(renderedOutput), &decodedReport))
	require.Equal(testInstance, "main", decodedReport.Branch)
	require.False(testInstance, decodedReport.Clean)
	require.Len(testInstance, decodedReport.Entries, 2)
	require.Equal(testInstance, "modified", decodedReport.Entries[0].Status)
	require.Equal(testInstance, "untracked", decodedReport.Entries[1].Status)

	require.Equal(testInstance, testRepositoryDirectoryConstant, stubExecutor.recordedDetails[0].WorkingDirectory)
}

func TestBranchesCommandRendersYAML(testInstance *testing.T) {
	stubExecutor := &subcommandStubExecutor{
		outputsBySubcommand: map[string]string{
			"branch": "main\t5f3a9c04d6b2e8f1a7c0d9b3e6f2a8c4d0b7e1f5\t*\torigin/main\n",
		},
	}
	builder := repo.BranchesCommandBuilder{GitExecutor: stubExecutor}
	branchesCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	renderedOutput := executeCommand(testInstance, branchesCommand, "--directory", testRepositoryDirectoryConstant)

	var decodedBranches []struct {
		Name     string `yaml:"name"`
		IsHead   bool   `yaml:"is_head"`
		Upstream string `yaml:"upstream"`
	}
	require.NoError(testInstance, yaml.Unmarshal([]byte(renderedOutput), &decodedBranches))
	require.Len(testInstance, decodedBranches, 1)
	require.Equal(testInstance, "main", decodedBranches[0].Name)
	require.True(testInstance, decodedBranches[0].IsHead)
	require.Equal(testInstance, "origin/main", decodedBranches[0].Upstream)
}

func TestShowCommandPassesRevision(testInstance *testing.T) {
	stubExecutor := &subcommandStubExecutor{
		outputsBySubcommand: map[string]string{
			"show": "hash 5f3a9c04d6b2e8f1a7c0d9b3e6f2a8c4d0b7e1f5\nshort 5f3a9c0\nauthor_name A\nauthor_email a@example.com\ntimestamp 1735689600\nparents\nmessage Fix login redirect\n",
		},
	}
	builder := repo.ShowCommandBuilder{GitExecutor: stubExecutor}
	showCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	renderedOutput := executeCommand(testInstance, showCommand, "--directory", testRepositoryDirectoryConstant, "5f3a9c0")

	var decodedCommit struct {
		ShortHash string `yaml:"short_hash"`
		Message   string `yaml:"message"`
	}
	require.NoError(testInstance, yaml.Unmarshal([]byte(renderedOutput), &decodedCommit))
	require.Equal(testInstance, "5f3a9c0", decodedCommit.ShortHash)
	require.Equal(testInstance, "Fix login redirect", decodedCommit.Message)

	require.Contains(testInstance, stubExecutor.recordedDetails[0].Arguments, "5f3a9c0")
}

func TestLogCommandForwardsLimit(testInstance *testing.T) {
	stubExecutor := &subcommandStubExecutor{
		outputsBySubcommand: map[string]string{
			"log": "hash 5f3a9c04d6b2e8f1a7c0d9b3e6f2a8c4d0b7e1f5\nshort 5f3a9c0\nauthor_name A\nauthor_email a@example.com\ntimestamp 1735689600\nparents\nmessage Fix login redirect\n\x1e",
		},
	}
	builder := repo.LogCommandBuilder{GitExecutor: stubExecutor}
	logCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	renderedOutput := executeCommand(testInstance, logCommand, "--directory", testRepositoryDirectoryConstant, "--limit", "3")
	require.Contains(testInstance, renderedOutput, "Fix login redirect")

	require.Contains(testInstance, stubExecutor.recordedDetails[0].Arguments, "-n")
	require.Contains(testInstance, stubExecutor.recordedDetails[0].Arguments, "3")
}

func TestRemotesCommandRendersYAML(testInstance *testing.T) {
	stubExecutor := &subcommandStubExecutor{
		outputsBySubcommand: map[string]string{
			"remote": "origin\n",
			"config": "https://example.com/project.git\n",
		},
	}
	builder := repo.RemotesCommandBuilder{GitExecutor: stubExecutor}
	remotesCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	renderedOutput := executeCommand(testInstance, remotesCommand, "--directory", testRepositoryDirectoryConstant)

	var decodedRemotes []struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	}
	require.NoError(testInstance, yaml.Unmarshal([]byte(renderedOutput), &decodedRemotes))
	require.Len(testInstance, decodedRemotes, 1)
	require.Equal(testInstance, "origin", decodedRemotes[0].Name)
	require.Equal(testInstance, "https://example.com/project.git", decodedRemotes[0].URL)
}

func TestCloneCommandValidatesURL(testInstance *testing.T) {
	builder := repo.CloneCommandBuilder{GitExecutor: &subcommandStubExecutor{}}
	cloneCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	cloneCommand.SetContext(context.Background())
	cloneCommand.SetArgs([]string{"not-a-repository-url"})
	cloneCommand.SetOut(new(bytes.Buffer))
	cloneCommand.SetErr(new(bytes.Buffer))

	executionError := cloneCommand.Execute()
	require.Error(testInstance, executionError)

	var validationError *gitrepo.ValidationError
	require.ErrorAs(testInstance, executionError, &validationError)
}

func TestCloneCommandDerivesTargetPath(testInstance *testing.T) {
	stubExecutor := &subcommandStubExecutor{}
	builder := repo.CloneCommandBuilder{GitExecutor: stubExecutor}
	cloneCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	renderedOutput := executeCommand(testInstance, cloneCommand, "https://example.com/team/project.git")
	require.Contains(testInstance, renderedOutput, "project")

	require.Equal(testInstance, []string{"clone", "https://example.com/team/project.git", "project"}, stubExecutor.recordedDetails[0].Arguments)
}
