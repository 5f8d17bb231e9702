package gitrepo

import (
	"regexp"
	"strings"
)

const (
	repositoryURLSubjectConstant = "repository URL"
	branchNameSubjectConstant    = "branch name"
	remoteNameSubjectConstant    = "remote name"
	commitHashSubjectConstant    = "commit hash"

	emptyValueRuleConstant                   = "value must not be empty"
	whitespaceRuleConstant                   = "value must not contain whitespace"
	repositoryURLPatternRuleConstant         = "value must be a git, ssh, http(s), or scp-like URL ending in .git"
	branchNameControlCharacterRuleConstant   = "value must not contain control characters"
	branchNameForbiddenCharacterRuleConstant = "value must not contain space, ~, ^, :, \\, ?, [, or ]"
	branchNameLeadingDashRuleConstant        = "value must not start with -"
	branchNameTrailingDotRuleConstant        = "value must not end with ."
	branchNameForbiddenSequenceRuleConstant  = "value must not contain .., @{, //, /., or /*"
	branchNameSingleAtRuleConstant           = "value must not be the single character @"
	remoteNameSlashRuleConstant              = "value must not contain /"
	commitHashShapeRuleConstant              = "value must be 4 to 40 lowercase hexadecimal characters"
	commitHashMinimumLengthConstant          = 4
	commitHashMaximumLengthConstant          = 40
	branchNameForbiddenCharactersSetConstant = " ~^:\\?[]"
	branchNameTrailingDotSuffixConstant      = "."
	branchNameLeadingDashPrefixConstant      = "-"
	branchNameSingleAtValueConstant          = "@"
	repositoryURLExpressionConstant          = `^(?:git|ssh|https?|git@[-\w.]+):(//)?(.*?)(\.git)(/?|#[-\d\w._]+?)$`
)

var repositoryURLExpression = regexp.MustCompile(repositoryURLExpressionConstant)

var branchNameForbiddenSequences = []string{"..", "@{", "//", "/.", "/*"}

// RepositoryURL is a validated location of a remote git repository.
type RepositoryURL struct {
	value string
}

// ParseRepositoryURL validates candidate and returns it as a RepositoryURL.
func ParseRepositoryURL(candidate string) (RepositoryURL, error) {
	if len(candidate) == 0 {
		return RepositoryURL{}, &ValidationError{Subject: repositoryURLSubjectConstant, Rule: emptyValueRuleConstant, Value: candidate}
	}
	if strings.ContainsAny(candidate, " \t\r\n") {
		return RepositoryURL{}, &ValidationError{Subject: repositoryURLSubjectConstant, Rule: whitespaceRuleConstant, Value: candidate}
	}
	if !repositoryURLExpression.MatchString(candidate) {
		return RepositoryURL{}, &ValidationError{Subject: repositoryURLSubjectConstant, Rule: repositoryURLPatternRuleConstant, Value: candidate}
	}
	return RepositoryURL{value: candidate}, nil
}

// String returns the URL exactly as it was accepted.
func (repositoryURL RepositoryURL) String() string {
	return repositoryURL.value
}

// MarshalText implements encoding.TextMarshaler.
func (repositoryURL RepositoryURL) MarshalText() ([]byte, error) {
	return []byte(repositoryURL.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseRepositoryURL.
func (repositoryURL *RepositoryURL) UnmarshalText(text []byte) error {
	parsedURL, parseError := ParseRepositoryURL(string(text))
	if parseError != nil {
		return parseError
	}
	*repositoryURL = parsedURL
	return nil
}

// BranchName is a validated git branch name.
type BranchName struct {
	value string
}

// ParseBranchName validates candidate against the branch naming rules git
// enforces through check-ref-format and returns it as a BranchName.
func ParseBranchName(candidate string) (BranchName, error) {
	if len(candidate) == 0 {
		return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: emptyValueRuleConstant, Value: candidate}
	}
	if candidate == branchNameSingleAtValueConstant {
		return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: branchNameSingleAtRuleConstant, Value: candidate}
	}
	for _, candidateRune := range candidate {
		if candidateRune < 0x20 || candidateRune == 0x7f {
			return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: branchNameControlCharacterRuleConstant, Value: candidate}
		}
	}
	if strings.ContainsAny(candidate, branchNameForbiddenCharactersSetConstant) {
		return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: branchNameForbiddenCharacterRuleConstant, Value: candidate}
	}
	if strings.HasPrefix(candidate, branchNameLeadingDashPrefixConstant) {
		return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: branchNameLeadingDashRuleConstant, Value: candidate}
	}
	if strings.HasSuffix(candidate, branchNameTrailingDotSuffixConstant) {
		return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: branchNameTrailingDotRuleConstant, Value: candidate}
	}
	for _, forbiddenSequence := range branchNameForbiddenSequences {
		if strings.Contains(candidate, forbiddenSequence) {
			return BranchName{}, &ValidationError{Subject: branchNameSubjectConstant, Rule: branchNameForbiddenSequenceRuleConstant, Value: candidate}
		}
	}
	return BranchName{value: candidate}, nil
}

// String returns the branch name exactly as it was accepted.
func (branchName BranchName) String() string {
	return branchName.value
}

// MarshalText implements encoding.TextMarshaler.
func (branchName BranchName) MarshalText() ([]byte, error) {
	return []byte(branchName.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseBranchName.
func (branchName *BranchName) UnmarshalText(text []byte) error {
	parsedName, parseError := ParseBranchName(string(text))
	if parseError != nil {
		return parseError
	}
	*branchName = parsedName
	return nil
}

// RemoteName is a validated git remote name.
type RemoteName struct {
	value string
}

// ParseRemoteName validates candidate and returns it as a RemoteName.
func ParseRemoteName(candidate string) (RemoteName, error) {
	if len(candidate) == 0 {
		return RemoteName{}, &ValidationError{Subject: remoteNameSubjectConstant, Rule: emptyValueRuleConstant, Value: candidate}
	}
	if strings.ContainsAny(candidate, " \t\r\n") {
		return RemoteName{}, &ValidationError{Subject: remoteNameSubjectConstant, Rule: whitespaceRuleConstant, Value: candidate}
	}
	if strings.Contains(candidate, "/") {
		return RemoteName{}, &ValidationError{Subject: remoteNameSubjectConstant, Rule: remoteNameSlashRuleConstant, Value: candidate}
	}
	return RemoteName{value: candidate}, nil
}

// String returns the remote name exactly as it was accepted.
func (remoteName RemoteName) String() string {
	return remoteName.value
}

// MarshalText implements encoding.TextMarshaler.
func (remoteName RemoteName) MarshalText() ([]byte, error) {
	return []byte(remoteName.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseRemoteName.
func (remoteName *RemoteName) UnmarshalText(text []byte) error {
	parsedName, parseError := ParseRemoteName(string(text))
	if parseError != nil {
		return parseError
	}
	*remoteName = parsedName
	return nil
}

// CommitHash is a validated full or abbreviated git object hash.
type CommitHash struct {
	value string
}

// ParseCommitHash validates candidate and returns it as a CommitHash.
func ParseCommitHash(candidate string) (CommitHash, error) {
	if len(candidate) < commitHashMinimumLengthConstant || len(candidate) > commitHashMaximumLengthConstant {
		return CommitHash{}, &ValidationError{Subject: commitHashSubjectConstant, Rule: commitHashShapeRuleConstant, Value: candidate}
	}
	for _, candidateRune := range candidate {
		isDigit := candidateRune >= '0' && candidateRune <= '9'
		isLowerHexLetter := candidateRune >= 'a' && candidateRune <= 'f'
		if !isDigit && !isLowerHexLetter {
			return CommitHash{}, &ValidationError{Subject: commitHashSubjectConstant, Rule: commitHashShapeRuleConstant, Value: candidate}
		}
	}
	return CommitHash{value: candidate}, nil
}

// String returns the hash exactly as it was accepted.
func (commitHash CommitHash) String() string {
	return commitHash.value
}

// MarshalText implements encoding.TextMarshaler.
func (commitHash CommitHash) MarshalText() ([]byte, error) {
	return []byte(commitHash.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseCommitHash.
func (commitHash *CommitHash) UnmarshalText(text []byte) error {
	parsedHash, parseError := ParseCommitHash(string(text))
	if parseError != nil {
		return parseError
	}
	*commitHash = parsedHash
	return nil
}
