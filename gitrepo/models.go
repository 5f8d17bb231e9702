package gitrepo

import "time"

// FileStatus classifies one path reported by git status.
type FileStatus string

const (
	// FileStatusModified marks a worktree modification that is not staged.
	FileStatusModified FileStatus = "modified"
	// FileStatusModifiedStaged marks a modification recorded in the index.
	FileStatusModifiedStaged FileStatus = "modified_staged"
	// FileStatusAdded marks a path newly added to the index.
	FileStatusAdded FileStatus = "added"
	// FileStatusDeleted marks a worktree deletion that is not staged.
	FileStatusDeleted FileStatus = "deleted"
	// FileStatusDeletedStaged marks a deletion recorded in the index.
	FileStatusDeletedStaged FileStatus = "deleted_staged"
	// FileStatusRenamed marks a rename recorded in the index.
	FileStatusRenamed FileStatus = "renamed"
	// FileStatusCopied marks a copy recorded in the index.
	FileStatusCopied FileStatus = "copied"
	// FileStatusTypeChanged marks a file type change.
	FileStatusTypeChanged FileStatus = "type_changed"
	// FileStatusConflicted marks an unmerged path.
	FileStatusConflicted FileStatus = "conflicted"
	// FileStatusUntracked marks a path git does not track.
	FileStatusUntracked FileStatus = "untracked"
	// FileStatusIgnored marks a path matched by an ignore rule.
	FileStatusIgnored FileStatus = "ignored"
)

// StatusEntry describes one path reported by git status.
type StatusEntry struct {
	Path         string     `yaml:"path" json:"path"`
	Status       FileStatus `yaml:"status" json:"status"`
	OriginalPath string     `yaml:"original_path,omitempty" json:"original_path,omitempty"`
}

// RepositoryStatus describes the current branch and pending changes of a working directory.
type RepositoryStatus struct {
	Branch  string        `yaml:"branch" json:"branch"`
	Entries []StatusEntry `yaml:"entries" json:"entries"`
}

// IsClean reports whether the status carries no pending entries.
func (repositoryStatus RepositoryStatus) IsClean() bool {
	return len(repositoryStatus.Entries) == 0
}

// Commit describes a single commit record.
type Commit struct {
	Hash        CommitHash   `yaml:"hash" json:"hash"`
	ShortHash   CommitHash   `yaml:"short_hash" json:"short_hash"`
	AuthorName  string       `yaml:"author_name" json:"author_name"`
	AuthorEmail string       `yaml:"author_email" json:"author_email"`
	Timestamp   time.Time    `yaml:"timestamp" json:"timestamp"`
	Message     string       `yaml:"message" json:"message"`
	Parents     []CommitHash `yaml:"parents,omitempty" json:"parents,omitempty"`
}

// BranchDetails describes one local branch.
type BranchDetails struct {
	Name     BranchName `yaml:"name" json:"name"`
	Commit   CommitHash `yaml:"commit" json:"commit"`
	IsHead   bool       `yaml:"is_head" json:"is_head"`
	Upstream string     `yaml:"upstream,omitempty" json:"upstream,omitempty"`
}

// RemoteDetails describes one configured remote.
type RemoteDetails struct {
	Name RemoteName    `yaml:"name" json:"name"`
	URL  RepositoryURL `yaml:"url" json:"url"`
}
