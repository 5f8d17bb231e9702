package gitrepo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitshell/execshell"
)

const (
	repositoryPathSubjectConstant   = "repository path"
	commitMessageSubjectConstant    = "commit message"
	revisionSubjectConstant         = "revision"
	pathListSubjectConstant         = "path list"
	rebaseTargetSubjectConstant     = "rebase target"
	commandArgumentsSubjectConstant = "command arguments"

	emptyPathListRuleConstant  = "at least one path is required"
	emptyRefListRuleConstant   = "at least one revision is required"
	emptyArgumentsRuleConstant = "at least one argument is required"

	terminalPromptEnvironmentKeyConstant   = "GIT_TERMINAL_PROMPT"
	terminalPromptEnvironmentValueConstant = "0"

	headRevisionLabelConstant = "HEAD"
)

// GitExecutor runs git commands and reports their captured output.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryOption customizes a Repository during construction.
type RepositoryOption func(*Repository)

// WithExecutor replaces the default process-backed executor.
func WithExecutor(executor GitExecutor) RepositoryOption {
	return func(repository *Repository) {
		repository.executor = executor
	}
}

// WithLogger supplies the logger used by the default executor.
func WithLogger(logger *zap.Logger) RepositoryOption {
	return func(repository *Repository) {
		repository.logger = logger
	}
}

// WithEnvironment adds environment variables to every git invocation.
func WithEnvironment(environment map[string]string) RepositoryOption {
	return func(repository *Repository) {
		repository.environment = environment
	}
}

// Repository is the synchronous facade over one git working directory.
//
// Calls are not serialized: concurrent mutations of the same working
// directory contend on git's own index lock and must be coordinated by the
// caller. Read-only operations are safe to run concurrently.
type Repository struct {
	workingDirectory string
	executor         GitExecutor
	logger           *zap.Logger
	environment      map[string]string
}

// NewRepository binds a facade to the working directory at path. The path is
// not inspected; the first operation surfaces a NotARepository failure when
// the directory is not inside a repository.
func NewRepository(path string, options ...RepositoryOption) (*Repository, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return nil, &ValidationError{Subject: repositoryPathSubjectConstant, Rule: emptyValueRuleConstant, Value: path}
	}

	repository := &Repository{workingDirectory: trimmedPath}
	for _, option := range options {
		option(repository)
	}

	if repository.executor == nil {
		executorLogger := repository.logger
		if executorLogger == nil {
			executorLogger = zap.NewNop()
		}
		shellExecutor, executorError := execshell.NewShellExecutor(executorLogger, execshell.NewOSCommandRunner())
		if executorError != nil {
			return nil, executorError
		}
		repository.executor = shellExecutor
	}

	return repository, nil
}

// Clone runs `git clone` for url into path and returns a Repository bound to it.
func Clone(executionContext context.Context, url RepositoryURL, path string, options ...RepositoryOption) (*Repository, error) {
	repository, constructionError := NewRepository(path, options...)
	if constructionError != nil {
		return nil, constructionError
	}

	cloneDetails := execshell.CommandDetails{
		Arguments:            []string{"clone", url.String(), repository.workingDirectory},
		EnvironmentVariables: repository.commandEnvironment(),
	}
	if _, cloneError := repository.execute(executionContext, cloneDetails); cloneError != nil {
		return nil, cloneError
	}
	return repository, nil
}

// Init runs `git init` for path and returns a Repository bound to it.
func Init(executionContext context.Context, path string, options ...RepositoryOption) (*Repository, error) {
	repository, constructionError := NewRepository(path, options...)
	if constructionError != nil {
		return nil, constructionError
	}

	initDetails := execshell.CommandDetails{
		Arguments:            []string{"init", repository.workingDirectory},
		EnvironmentVariables: repository.commandEnvironment(),
	}
	if _, initError := repository.execute(executionContext, initDetails); initError != nil {
		return nil, initError
	}
	return repository, nil
}

// Path returns the working directory the facade is bound to.
func (repository *Repository) Path() string {
	return repository.workingDirectory
}

// Status reports the current branch and pending changes.
func (repository *Repository) Status(executionContext context.Context) (RepositoryStatus, error) {
	executionResult, runError := repository.run(executionContext, "status", "--porcelain", "--branch")
	if runError != nil {
		return RepositoryStatus{}, runError
	}
	return ParseStatusOutput(executionResult.StandardOutput)
}

// AddPaths stages the given paths.
func (repository *Repository) AddPaths(executionContext context.Context, paths ...string) error {
	if len(paths) == 0 {
		return &ValidationError{Subject: pathListSubjectConstant, Rule: emptyPathListRuleConstant}
	}
	arguments := append([]string{"add", "--"}, paths...)
	_, runError := repository.run(executionContext, arguments...)
	return runError
}

// RemovePaths removes the given paths from the index and the working tree.
func (repository *Repository) RemovePaths(executionContext context.Context, force bool, paths ...string) error {
	if len(paths) == 0 {
		return &ValidationError{Subject: pathListSubjectConstant, Rule: emptyPathListRuleConstant}
	}
	arguments := []string{"rm"}
	if force {
		arguments = append(arguments, "--force")
	}
	arguments = append(arguments, "--")
	arguments = append(arguments, paths...)
	_, runError := repository.run(executionContext, arguments...)
	return runError
}

// CommitStaged records the staged changes with the given message.
func (repository *Repository) CommitStaged(executionContext context.Context, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return &ValidationError{Subject: commitMessageSubjectConstant, Rule: emptyValueRuleConstant, Value: message}
	}
	_, runError := repository.run(executionContext, "commit", "-m", message)
	return runError
}

// StageAndCommitAll stages every change in the working tree and commits it.
func (repository *Repository) StageAndCommitAll(executionContext context.Context, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return &ValidationError{Subject: commitMessageSubjectConstant, Rule: emptyValueRuleConstant, Value: message}
	}
	if _, addError := repository.run(executionContext, "add", "--all"); addError != nil {
		return addError
	}
	_, commitError := repository.run(executionContext, "commit", "-m", message)
	return commitError
}

// Push updates the configured upstream of the current branch.
func (repository *Repository) Push(executionContext context.Context) error {
	_, runError := repository.run(executionContext, "push")
	return runError
}

// PushUpstream pushes branch to remote and records it as the upstream.
func (repository *Repository) PushUpstream(executionContext context.Context, remote RemoteName, branch BranchName) error {
	_, runError := repository.run(executionContext, "push", "--set-upstream", remote.String(), branch.String())
	return runError
}

// Pull integrates changes from the configured upstream.
func (repository *Repository) Pull(executionContext context.Context) error {
	_, runError := repository.run(executionContext, "pull")
	return runError
}

// FetchRemote downloads objects and refs from remote without integrating them.
func (repository *Repository) FetchRemote(executionContext context.Context, remote RemoteName) error {
	_, runError := repository.run(executionContext, "fetch", remote.String())
	return runError
}

// CreateBranch creates a branch at HEAD and switches to it.
func (repository *Repository) CreateBranch(executionContext context.Context, name BranchName) error {
	_, runError := repository.run(executionContext, "checkout", "-b", name.String())
	return runError
}

// CreateBranchFrom creates a branch at startPoint and switches to it.
func (repository *Repository) CreateBranchFrom(executionContext context.Context, name BranchName, startPoint string) error {
	trimmedStartPoint := strings.TrimSpace(startPoint)
	if len(trimmedStartPoint) == 0 {
		return &ValidationError{Subject: revisionSubjectConstant, Rule: emptyValueRuleConstant, Value: startPoint}
	}
	_, runError := repository.run(executionContext, "checkout", "-b", name.String(), trimmedStartPoint)
	return runError
}

// SwitchBranch checks out an existing branch.
func (repository *Repository) SwitchBranch(executionContext context.Context, name BranchName) error {
	_, runError := repository.run(executionContext, "checkout", name.String())
	return runError
}

// ListBranches reports the names of all local branches.
func (repository *Repository) ListBranches(executionContext context.Context) ([]BranchName, error) {
	executionResult, runError := repository.run(executionContext, "branch", "--list", "--format="+branchListFormatConstant)
	if runError != nil {
		return nil, runError
	}
	return ParseBranchListOutput(executionResult.StandardOutput)
}

// ListBranchDetails reports every local branch with its commit, head marker, and upstream.
func (repository *Repository) ListBranchDetails(executionContext context.Context) ([]BranchDetails, error) {
	executionResult, runError := repository.run(executionContext, "branch", "--list", "--format="+branchDetailsFormatConstant)
	if runError != nil {
		return nil, runError
	}
	return ParseBranchDetailsOutput(executionResult.StandardOutput)
}

// ListRemotes reports the names of all configured remotes.
func (repository *Repository) ListRemotes(executionContext context.Context) ([]RemoteName, error) {
	executionResult, runError := repository.run(executionContext, "remote")
	if runError != nil {
		return nil, runError
	}
	return ParseRemoteListOutput(executionResult.StandardOutput)
}

// AddRemote registers url under the given remote name.
func (repository *Repository) AddRemote(executionContext context.Context, name RemoteName, url RepositoryURL) error {
	_, runError := repository.run(executionContext, "remote", "add", name.String(), url.String())
	return runError
}

// RemoteURL reports the fetch URL configured for the given remote.
func (repository *Repository) RemoteURL(executionContext context.Context, name RemoteName) (RepositoryURL, error) {
	configurationKey := "remote." + name.String() + ".url"
	executionResult, runError := repository.run(executionContext, "config", "--get", configurationKey)
	if runError != nil {
		return RepositoryURL{}, runError
	}
	return ParseRepositoryURL(strings.TrimSpace(executionResult.StandardOutput))
}

// ListRemoteDetails reports every configured remote with its fetch URL.
func (repository *Repository) ListRemoteDetails(executionContext context.Context) ([]RemoteDetails, error) {
	remoteNames, listError := repository.ListRemotes(executionContext)
	if listError != nil {
		return nil, listError
	}

	remoteDetails := []RemoteDetails{}
	for _, remoteName := range remoteNames {
		remoteURL, urlError := repository.RemoteURL(executionContext, remoteName)
		if urlError != nil {
			return nil, urlError
		}
		remoteDetails = append(remoteDetails, RemoteDetails{Name: remoteName, URL: remoteURL})
	}
	return remoteDetails, nil
}

// ListTracked reports every path git tracks in the working directory.
func (repository *Repository) ListTracked(executionContext context.Context) ([]string, error) {
	executionResult, runError := repository.run(executionContext, "ls-files")
	if runError != nil {
		return nil, runError
	}

	trackedPaths := []string{}
	for _, rawLine := range strings.Split(executionResult.StandardOutput, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")
		if len(line) == 0 {
			continue
		}
		trackedPaths = append(trackedPaths, line)
	}
	return trackedPaths, nil
}

// HeadRevision resolves HEAD to a full or abbreviated commit hash.
func (repository *Repository) HeadRevision(executionContext context.Context, short bool) (CommitHash, error) {
	arguments := []string{"rev-parse"}
	if short {
		arguments = append(arguments, "--short")
	}
	arguments = append(arguments, headRevisionLabelConstant)

	executionResult, runError := repository.run(executionContext, arguments...)
	if runError != nil {
		return CommitHash{}, runError
	}
	return ParseCommitHash(strings.TrimSpace(executionResult.StandardOutput))
}

// ShowCommit reports the commit record for ref; an empty ref describes HEAD.
func (repository *Repository) ShowCommit(executionContext context.Context, ref string) (Commit, error) {
	trimmedRef := strings.TrimSpace(ref)
	if len(trimmedRef) == 0 {
		trimmedRef = headRevisionLabelConstant
	}

	executionResult, runError := repository.run(executionContext, "show", "--no-patch", "--format="+commitRecordFormatConstant, trimmedRef)
	if runError != nil {
		return Commit{}, runError
	}
	return ParseCommitOutput(executionResult.StandardOutput)
}

// Log reports up to limit commit records reachable from HEAD, newest first.
// A non-positive limit reports the full history.
func (repository *Repository) Log(executionContext context.Context, limit int) ([]Commit, error) {
	arguments := []string{"log", "--format=" + logRecordFormatConstant}
	if limit > 0 {
		arguments = append(arguments, "-n", strconv.Itoa(limit))
	}

	executionResult, runError := repository.run(executionContext, arguments...)
	if runError != nil {
		return nil, runError
	}
	return ParseLogOutput(executionResult.StandardOutput)
}

// Rebase replays the current branch onto target.
func (repository *Repository) Rebase(executionContext context.Context, target string) error {
	trimmedTarget := strings.TrimSpace(target)
	if len(trimmedTarget) == 0 {
		return &ValidationError{Subject: rebaseTargetSubjectConstant, Rule: emptyValueRuleConstant, Value: target}
	}
	_, runError := repository.run(executionContext, "rebase", trimmedTarget)
	return runError
}

// RebaseContinue resumes a rebase stopped on conflicts.
func (repository *Repository) RebaseContinue(executionContext context.Context) error {
	_, runError := repository.run(executionContext, "rebase", "--continue")
	return runError
}

// RebaseAbort abandons an in-progress rebase.
func (repository *Repository) RebaseAbort(executionContext context.Context) error {
	_, runError := repository.run(executionContext, "rebase", "--abort")
	return runError
}

// CherryPick applies the given revisions onto the current branch.
func (repository *Repository) CherryPick(executionContext context.Context, refs ...string) error {
	if len(refs) == 0 {
		return &ValidationError{Subject: revisionSubjectConstant, Rule: emptyRefListRuleConstant}
	}
	arguments := append([]string{"cherry-pick"}, refs...)
	_, runError := repository.run(executionContext, arguments...)
	return runError
}

// CherryPickContinue resumes a cherry-pick stopped on conflicts.
func (repository *Repository) CherryPickContinue(executionContext context.Context) error {
	_, runError := repository.run(executionContext, "cherry-pick", "--continue")
	return runError
}

// CherryPickAbort abandons an in-progress cherry-pick.
func (repository *Repository) CherryPickAbort(executionContext context.Context) error {
	_, runError := repository.run(executionContext, "cherry-pick", "--abort")
	return runError
}

// Command runs an arbitrary git command in the working directory.
func (repository *Repository) Command(executionContext context.Context, arguments ...string) error {
	if len(arguments) == 0 {
		return &ValidationError{Subject: commandArgumentsSubjectConstant, Rule: emptyArgumentsRuleConstant}
	}
	_, runError := repository.run(executionContext, arguments...)
	return runError
}

// CommandOutput runs an arbitrary git command and reports its standard output.
func (repository *Repository) CommandOutput(executionContext context.Context, arguments ...string) (string, error) {
	if len(arguments) == 0 {
		return "", &ValidationError{Subject: commandArgumentsSubjectConstant, Rule: emptyArgumentsRuleConstant}
	}
	executionResult, runError := repository.run(executionContext, arguments...)
	if runError != nil {
		return "", runError
	}
	return executionResult.StandardOutput, nil
}

func (repository *Repository) run(executionContext context.Context, arguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repository.workingDirectory,
		EnvironmentVariables: repository.commandEnvironment(),
	}
	return repository.execute(executionContext, commandDetails)
}

func (repository *Repository) execute(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executionResult, executionError := repository.executor.ExecuteGit(executionContext, details)
	if executionError == nil {
		return executionResult, nil
	}

	var commandFailedError execshell.CommandFailedError
	if errors.As(executionError, &commandFailedError) {
		return executionResult, classifyCommandFailure(details, commandFailedError.Result)
	}

	var commandExecutionError execshell.CommandExecutionError
	if errors.As(executionError, &commandExecutionError) {
		return executionResult, &ProcessError{
			Command:  string(execshell.CommandGit),
			Cause:    commandExecutionError.Cause,
			NotFound: execshell.IsNotFoundError(commandExecutionError.Cause),
		}
	}

	return executionResult, &ProcessError{Command: string(execshell.CommandGit), Cause: executionError}
}

func (repository *Repository) commandEnvironment() map[string]string {
	commandEnvironment := map[string]string{terminalPromptEnvironmentKeyConstant: terminalPromptEnvironmentValueConstant}
	for environmentKey, environmentValue := range repository.environment {
		commandEnvironment[environmentKey] = environmentValue
	}
	return commandEnvironment
}
