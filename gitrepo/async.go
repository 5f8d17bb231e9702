package gitrepo

import "context"

// Outcome carries the result of one asynchronous operation. Exactly one
// Outcome is delivered per call before the channel closes.
type Outcome[T any] struct {
	Value T
	Err   error
}

// AsyncRepository mirrors Repository with channel-based results. Each call
// runs in its own goroutine; cancelling the supplied context terminates the
// underlying git process.
type AsyncRepository struct {
	repository *Repository
}

// NewAsyncRepository wraps an existing synchronous facade.
func NewAsyncRepository(repository *Repository) *AsyncRepository {
	return &AsyncRepository{repository: repository}
}

// CloneAsync runs Clone in the background and delivers the bound Repository.
func CloneAsync(executionContext context.Context, url RepositoryURL, path string, options ...RepositoryOption) <-chan Outcome[*Repository] {
	return produceOutcome(func() (*Repository, error) {
		return Clone(executionContext, url, path, options...)
	})
}

// InitAsync runs Init in the background and delivers the bound Repository.
func InitAsync(executionContext context.Context, path string, options ...RepositoryOption) <-chan Outcome[*Repository] {
	return produceOutcome(func() (*Repository, error) {
		return Init(executionContext, path, options...)
	})
}

// Repository returns the wrapped synchronous facade.
func (asyncRepository *AsyncRepository) Repository() *Repository {
	return asyncRepository.repository
}

// Status mirrors Repository.Status.
func (asyncRepository *AsyncRepository) Status(executionContext context.Context) <-chan Outcome[RepositoryStatus] {
	return produceOutcome(func() (RepositoryStatus, error) {
		return asyncRepository.repository.Status(executionContext)
	})
}

// AddPaths mirrors Repository.AddPaths.
func (asyncRepository *AsyncRepository) AddPaths(executionContext context.Context, paths ...string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.AddPaths(executionContext, paths...)
	})
}

// RemovePaths mirrors Repository.RemovePaths.
func (asyncRepository *AsyncRepository) RemovePaths(executionContext context.Context, force bool, paths ...string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.RemovePaths(executionContext, force, paths...)
	})
}

// CommitStaged mirrors Repository.CommitStaged.
func (asyncRepository *AsyncRepository) CommitStaged(executionContext context.Context, message string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.CommitStaged(executionContext, message)
	})
}

// StageAndCommitAll mirrors Repository.StageAndCommitAll.
func (asyncRepository *AsyncRepository) StageAndCommitAll(executionContext context.Context, message string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.StageAndCommitAll(executionContext, message)
	})
}

// Push mirrors Repository.Push.
func (asyncRepository *AsyncRepository) Push(executionContext context.Context) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.Push(executionContext)
	})
}

// PushUpstream mirrors Repository.PushUpstream.
func (asyncRepository *AsyncRepository) PushUpstream(executionContext context.Context, remote RemoteName, branch BranchName) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.PushUpstream(executionContext, remote, branch)
	})
}

// Pull mirrors Repository.Pull.
func (asyncRepository *AsyncRepository) Pull(executionContext context.Context) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.Pull(executionContext)
	})
}

// FetchRemote mirrors Repository.FetchRemote.
func (asyncRepository *AsyncRepository) FetchRemote(executionContext context.Context, remote RemoteName) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.FetchRemote(executionContext, remote)
	})
}

// CreateBranch mirrors Repository.CreateBranch.
func (asyncRepository *AsyncRepository) CreateBranch(executionContext context.Context, name BranchName) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.CreateBranch(executionContext, name)
	})
}

// CreateBranchFrom mirrors Repository.CreateBranchFrom.
func (asyncRepository *AsyncRepository) CreateBranchFrom(executionContext context.Context, name BranchName, startPoint string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.CreateBranchFrom(executionContext, name, startPoint)
	})
}

// SwitchBranch mirrors Repository.SwitchBranch.
func (asyncRepository *AsyncRepository) SwitchBranch(executionContext context.Context, name BranchName) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.SwitchBranch(executionContext, name)
	})
}

// ListBranches mirrors Repository.ListBranches.
func (asyncRepository *AsyncRepository) ListBranches(executionContext context.Context) <-chan Outcome[[]BranchName] {
	return produceOutcome(func() ([]BranchName, error) {
		return asyncRepository.repository.ListBranches(executionContext)
	})
}

// ListBranchDetails mirrors Repository.ListBranchDetails.
func (asyncRepository *AsyncRepository) ListBranchDetails(executionContext context.Context) <-chan Outcome[[]BranchDetails] {
	return produceOutcome(func() ([]BranchDetails, error) {
		return asyncRepository.repository.ListBranchDetails(executionContext)
	})
}

// ListRemotes mirrors Repository.ListRemotes.
func (asyncRepository *AsyncRepository) ListRemotes(executionContext context.Context) <-chan Outcome[[]RemoteName] {
	return produceOutcome(func() ([]RemoteName, error) {
		return asyncRepository.repository.ListRemotes(executionContext)
	})
}

// AddRemote mirrors Repository.AddRemote.
func (asyncRepository *AsyncRepository) AddRemote(executionContext context.Context, name RemoteName, url RepositoryURL) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.AddRemote(executionContext, name, url)
	})
}

// RemoteURL mirrors Repository.RemoteURL.
func (asyncRepository *AsyncRepository) RemoteURL(executionContext context.Context, name RemoteName) <-chan Outcome[RepositoryURL] {
	return produceOutcome(func() (RepositoryURL, error) {
		return asyncRepository.repository.RemoteURL(executionContext, name)
	})
}

// ListRemoteDetails mirrors Repository.ListRemoteDetails.
func (asyncRepository *AsyncRepository) ListRemoteDetails(executionContext context.Context) <-chan Outcome[[]RemoteDetails] {
	return produceOutcome(func() ([]RemoteDetails, error) {
		return asyncRepository.repository.ListRemoteDetails(executionContext)
	})
}

// ListTracked mirrors Repository.ListTracked.
func (asyncRepository *AsyncRepository) ListTracked(executionContext context.Context) <-chan Outcome[[]string] {
	return produceOutcome(func() ([]string, error) {
		return asyncRepository.repository.ListTracked(executionContext)
	})
}

// HeadRevision mirrors Repository.HeadRevision.
func (asyncRepository *AsyncRepository) HeadRevision(executionContext context.Context, short bool) <-chan Outcome[CommitHash] {
	return produceOutcome(func() (CommitHash, error) {
		return asyncRepository.repository.HeadRevision(executionContext, short)
	})
}

// ShowCommit mirrors Repository.ShowCommit.
func (asyncRepository *AsyncRepository) ShowCommit(executionContext context.Context, ref string) <-chan Outcome[Commit] {
	return produceOutcome(func() (Commit, error) {
		return asyncRepository.repository.ShowCommit(executionContext, ref)
	})
}

// Log mirrors Repository.Log.
func (asyncRepository *AsyncRepository) Log(executionContext context.Context, limit int) <-chan Outcome[[]Commit] {
	return produceOutcome(func() ([]Commit, error) {
		return asyncRepository.repository.Log(executionContext, limit)
	})
}

// Rebase mirrors Repository.Rebase.
func (asyncRepository *AsyncRepository) Rebase(executionContext context.Context, target string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.Rebase(executionContext, target)
	})
}

// RebaseContinue mirrors Repository.RebaseContinue.
func (asyncRepository *AsyncRepository) RebaseContinue(executionContext context.Context) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.RebaseContinue(executionContext)
	})
}

// RebaseAbort mirrors Repository.RebaseAbort.
func (asyncRepository *AsyncRepository) RebaseAbort(executionContext context.Context) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.RebaseAbort(executionContext)
	})
}

// CherryPick mirrors Repository.CherryPick.
func (asyncRepository *AsyncRepository) CherryPick(executionContext context.Context, refs ...string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.CherryPick(executionContext, refs...)
	})
}

// CherryPickContinue mirrors Repository.CherryPickContinue.
func (asyncRepository *AsyncRepository) CherryPickContinue(executionContext context.Context) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.CherryPickContinue(executionContext)
	})
}

// CherryPickAbort mirrors Repository.CherryPickAbort.
func (asyncRepository *AsyncRepository) CherryPickAbort(executionContext context.Context) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.CherryPickAbort(executionContext)
	})
}

// Command mirrors Repository.Command.
func (asyncRepository *AsyncRepository) Command(executionContext context.Context, arguments ...string) <-chan error {
	return produceFailure(func() error {
		return asyncRepository.repository.Command(executionContext, arguments...)
	})
}

// CommandOutput mirrors Repository.CommandOutput.
func (asyncRepository *AsyncRepository) CommandOutput(executionContext context.Context, arguments ...string) <-chan Outcome[string] {
	return produceOutcome(func() (string, error) {
		return asyncRepository.repository.CommandOutput(executionContext, arguments...)
	})
}

func produceOutcome[T any](operation func() (T, error)) <-chan Outcome[T] {
	outcomeChannel := make(chan Outcome[T], 1)
	go func() {
		defer close(outcomeChannel)
		operationValue, operationError := operation()
		outcomeChannel <- Outcome[T]{Value: operationValue, Err: operationError}
	}()
	return outcomeChannel
}

func produceFailure(operation func() error) <-chan error {
	failureChannel := make(chan error, 1)
	go func() {
		defer close(failureChannel)
		failureChannel <- operation()
	}()
	return failureChannel
}
