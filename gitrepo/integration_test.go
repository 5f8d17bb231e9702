package gitrepo_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	integrationSkipMessageConstant   = "git executable not available"
	integrationFileNameConstant      = "notes.txt"
	integrationFileContentConstant   = "integration content\n"
	integrationCommitMessageConstant = "Add integration notes"
	integrationBranchNameConstant    = "feature/integration"
	integrationRemoteNameConstant    = "origin"
	integrationRemoteURLConstant     = "https://example.com/team/project.git"
)

func requireGitBinary(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip(integrationSkipMessageConstant)
	}
}

func newInitializedRepository(testInstance *testing.T) *gitrepo.Repository {
	testInstance.Helper()

	repositoryDirectory := testInstance.TempDir()
	repository, initError := gitrepo.Init(context.Background(), repositoryDirectory, gitrepo.WithEnvironment(map[string]string{
		"GIT_AUTHOR_NAME":     "Integration Tester",
		"GIT_AUTHOR_EMAIL":    "integration@example.com",
		"GIT_COMMITTER_NAME":  "Integration Tester",
		"GIT_COMMITTER_EMAIL": "integration@example.com",
	}))
	require.NoError(testInstance, initError)
	return repository
}

func TestRepositoryLifecycleAgainstRealGit(testInstance *testing.T) {
	requireGitBinary(testInstance)

	repository := newInitializedRepository(testInstance)
	executionContext := context.Background()

	initialStatus, statusError := repository.Status(executionContext)
	require.NoError(testInstance, statusError)
	require.True(testInstance, initialStatus.IsClean())

	trackedFilePath := filepath.Join(repository.Path(), integrationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(trackedFilePath, []byte(integrationFileContentConstant), 0o644))

	dirtyStatus, dirtyStatusError := repository.Status(executionContext)
	require.NoError(testInstance, dirtyStatusError)
	require.False(testInstance, dirtyStatus.IsClean())
	require.Len(testInstance, dirtyStatus.Entries, 1)
	require.Equal(testInstance, integrationFileNameConstant, dirtyStatus.Entries[0].Path)
	require.Equal(testInstance, gitrepo.FileStatusUntracked, dirtyStatus.Entries[0].Status)

	require.NoError(testInstance, repository.AddPaths(executionContext, integrationFileNameConstant))
	require.NoError(testInstance, repository.CommitStaged(executionContext, integrationCommitMessageConstant))

	cleanStatus, cleanStatusError := repository.Status(executionContext)
	require.NoError(testInstance, cleanStatusError)
	require.True(testInstance, cleanStatus.IsClean())

	headCommit, showError := repository.ShowCommit(executionContext, "")
	require.NoError(testInstance, showError)
	require.Equal(testInstance, integrationCommitMessageConstant, headCommit.Message)
	require.Empty(testInstance, headCommit.Parents)

	commits, logError := repository.Log(executionContext, 0)
	require.NoError(testInstance, logError)
	require.Len(testInstance, commits, 1)
	require.Equal(testInstance, headCommit.Hash, commits[0].Hash)
}

func TestRepositoryBranchAndRemoteOperationsAgainstRealGit(testInstance *testing.T) {
	requireGitBinary(testInstance)

	repository := newInitializedRepository(testInstance)
	executionContext := context.Background()

	trackedFilePath := filepath.Join(repository.Path(), integrationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(trackedFilePath, []byte(integrationFileContentConstant), 0o644))
	require.NoError(testInstance, repository.StageAndCommitAll(executionContext, integrationCommitMessageConstant))

	branchName, branchNameError := gitrepo.ParseBranchName(integrationBranchNameConstant)
	require.NoError(testInstance, branchNameError)
	require.NoError(testInstance, repository.CreateBranch(executionContext, branchName))

	branches, listError := repository.ListBranches(executionContext)
	require.NoError(testInstance, listError)
	branchNames := make([]string, 0, len(branches))
	for _, branch := range branches {
		branchNames = append(branchNames, branch.String())
	}
	require.Contains(testInstance, branchNames, integrationBranchNameConstant)

	currentBranchDetails, detailsError := repository.ListBranchDetails(executionContext)
	require.NoError(testInstance, detailsError)
	headObserved := false
	for _, details := range currentBranchDetails {
		if details.IsHead {
			headObserved = true
		}
	}
	require.True(testInstance, headObserved)

	remoteName, remoteNameError := gitrepo.ParseRemoteName(integrationRemoteNameConstant)
	require.NoError(testInstance, remoteNameError)
	remoteURL, remoteURLError := gitrepo.ParseRepositoryURL(integrationRemoteURLConstant)
	require.NoError(testInstance, remoteURLError)
	require.NoError(testInstance, repository.AddRemote(executionContext, remoteName, remoteURL))

	remotes, remotesError := repository.ListRemoteDetails(executionContext)
	require.NoError(testInstance, remotesError)
	require.Len(testInstance, remotes, 1)
	require.Equal(testInstance, integrationRemoteNameConstant, remotes[0].Name.String())
	require.Equal(testInstance, integrationRemoteURLConstant, remotes[0].URL.String())
}

func TestRepositoryReportsNotARepositoryAgainstRealGit(testInstance *testing.T) {
	requireGitBinary(testInstance)

	repository, constructionError := gitrepo.NewRepository(testInstance.TempDir())
	require.NoError(testInstance, constructionError)

	_, statusError := repository.Status(context.Background())
	require.Error(testInstance, statusError)
	require.True(testInstance, gitrepo.IsNotARepository(statusError))
}
