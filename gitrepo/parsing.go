package gitrepo

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	statusParseSubjectConstant        = "status"
	commitParseSubjectConstant        = "commit"
	logParseSubjectConstant           = "log"
	branchListParseSubjectConstant    = "branch list"
	branchDetailsParseSubjectConstant = "branch details"
	remoteListParseSubjectConstant    = "remote list"

	statusBranchHeaderPrefixConstant   = "## "
	statusDetachedHeadLabelConstant    = "HEAD (no branch)"
	statusInitialBranchPrefixConstant  = "No commits yet on "
	statusUpstreamSeparatorConstant    = "..."
	statusAheadBehindSeparatorConstant = " ["
	statusEntryMinimumLengthConstant   = 4
	statusRenameSeparatorConstant      = " -> "

	statusShortLineMessageConstant        = "line is shorter than a two-character code and a path"
	statusMissingSeparatorMessageConstant = "missing space between the status code and the path"
	statusUnknownCodeMessageConstant      = "unrecognized status code"
	statusEmptyCodeMessageConstant        = "blank status code is never reported for changed paths"
	statusMissingRenameMessageConstant    = "rename entry is missing the original path"

	commitFieldHashConstant        = "hash"
	commitFieldShortConstant       = "short"
	commitFieldAuthorNameConstant  = "author_name"
	commitFieldAuthorEmailConstant = "author_email"
	commitFieldTimestampConstant   = "timestamp"
	commitFieldParentsConstant     = "parents"
	commitFieldMessageConstant     = "message"

	commitMissingFieldMessageConstant     = "missing mandatory field"
	commitUnknownFieldMessageConstant     = "unrecognized field"
	commitInvalidTimestampMessageConstant = "timestamp is not a unix epoch integer"
	commitEmptyOutputMessageConstant      = "output is empty"

	branchDetailsFieldCountConstant        = 4
	branchDetailsFieldSeparatorConstant    = "\t"
	branchDetailsHeadMarkerConstant        = "*"
	branchDetailsFieldCountMessageConstant = "expected four tab-separated fields"

	// Format handed to git show/log so every field arrives on its own
	// prefixed line; records in log output end with an ASCII record
	// separator so multi-line subjects cannot be mistaken for boundaries.
	commitRecordFormatConstant  = "hash %H%nshort %h%nauthor_name %an%nauthor_email %ae%ntimestamp %at%nparents %P%nmessage %s"
	logRecordFormatConstant     = commitRecordFormatConstant + "%x1e"
	logRecordSeparatorConstant  = "\x1e"
	branchDetailsFormatConstant = "%(refname:short)%09%(objectname)%09%(HEAD)%09%(upstream:short)"
	branchListFormatConstant    = "%(refname:short)"
)

// ParseStatusOutput parses `git status --porcelain --branch` output into a
// RepositoryStatus. The branch header is optional; a detached HEAD yields an
// empty branch name.
func ParseStatusOutput(output string) (RepositoryStatus, error) {
	repositoryStatus := RepositoryStatus{Entries: []StatusEntry{}}

	for lineIndex, rawLine := range strings.Split(output, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		if lineIndex == 0 && strings.HasPrefix(line, statusBranchHeaderPrefixConstant) {
			repositoryStatus.Branch = parseStatusBranchHeader(strings.TrimPrefix(line, statusBranchHeaderPrefixConstant))
			continue
		}

		statusEntry, entryError := parseStatusEntryLine(line)
		if entryError != nil {
			return RepositoryStatus{}, entryError
		}
		repositoryStatus.Entries = append(repositoryStatus.Entries, statusEntry)
	}

	return repositoryStatus, nil
}

func parseStatusBranchHeader(header string) string {
	if header == statusDetachedHeadLabelConstant {
		return ""
	}
	if strings.HasPrefix(header, statusInitialBranchPrefixConstant) {
		header = strings.TrimPrefix(header, statusInitialBranchPrefixConstant)
	}
	if separatorIndex := strings.Index(header, statusUpstreamSeparatorConstant); separatorIndex >= 0 {
		header = header[:separatorIndex]
	}
	if separatorIndex := strings.Index(header, statusAheadBehindSeparatorConstant); separatorIndex >= 0 {
		header = header[:separatorIndex]
	}
	return strings.TrimSpace(header)
}

func parseStatusEntryLine(line string) (StatusEntry, error) {
	if len(line) < statusEntryMinimumLengthConstant {
		return StatusEntry{}, &ParseError{Subject: statusParseSubjectConstant, Line: line, Message: statusShortLineMessageConstant}
	}
	if line[2] != ' ' {
		return StatusEntry{}, &ParseError{Subject: statusParseSubjectConstant, Line: line, Message: statusMissingSeparatorMessageConstant}
	}

	fileStatus, statusError := parseStatusCode(line[:2])
	if statusError != nil {
		codeMessage := statusUnknownCodeMessageConstant
		var codeParseError *ParseError
		if errors.As(statusError, &codeParseError) {
			codeMessage = codeParseError.Message
		}
		return StatusEntry{}, &ParseError{Subject: statusParseSubjectConstant, Line: line, Message: codeMessage}
	}

	statusEntry := StatusEntry{Path: line[3:], Status: fileStatus}
	if fileStatus == FileStatusRenamed || fileStatus == FileStatusCopied {
		originalPath, currentPath, separatorFound := strings.Cut(statusEntry.Path, statusRenameSeparatorConstant)
		if !separatorFound {
			return StatusEntry{}, &ParseError{Subject: statusParseSubjectConstant, Line: line, Message: statusMissingRenameMessageConstant}
		}
		statusEntry.OriginalPath = originalPath
		statusEntry.Path = currentPath
	}

	return statusEntry, nil
}

// parseStatusCode maps a two-character porcelain XY code onto the closed
// FileStatus enumeration. Codes outside the enumeration are an error rather
// than a silent fallback.
func parseStatusCode(code string) (FileStatus, error) {
	if len(code) != 2 {
		return "", &ParseError{Subject: statusParseSubjectConstant, Line: code, Message: statusUnknownCodeMessageConstant}
	}

	switch code {
	case "??":
		return FileStatusUntracked, nil
	case "!!":
		return FileStatusIgnored, nil
	case "  ":
		return "", &ParseError{Subject: statusParseSubjectConstant, Line: code, Message: statusEmptyCodeMessageConstant}
	case "DD", "AA":
		return FileStatusConflicted, nil
	}

	indexCode := code[0]
	worktreeCode := code[1]

	if indexCode == 'U' || worktreeCode == 'U' {
		return FileStatusConflicted, nil
	}

	switch indexCode {
	case 'M':
		return FileStatusModifiedStaged, nil
	case 'A':
		return FileStatusAdded, nil
	case 'D':
		return FileStatusDeletedStaged, nil
	case 'R':
		return FileStatusRenamed, nil
	case 'C':
		return FileStatusCopied, nil
	case 'T':
		return FileStatusTypeChanged, nil
	}

	switch worktreeCode {
	case 'M':
		return FileStatusModified, nil
	case 'D':
		return FileStatusDeleted, nil
	case 'T':
		return FileStatusTypeChanged, nil
	}

	return "", &ParseError{Subject: statusParseSubjectConstant, Line: code, Message: statusUnknownCodeMessageConstant}
}

// ParseCommitOutput parses one field-prefixed commit record as produced by the
// show and log formats gitshell issues.
func ParseCommitOutput(output string) (Commit, error) {
	return parseCommitRecord(output, commitParseSubjectConstant)
}

// ParseLogOutput parses a sequence of record-separated commit records.
func ParseLogOutput(output string) ([]Commit, error) {
	commits := []Commit{}
	for _, record := range strings.Split(output, logRecordSeparatorConstant) {
		if len(strings.TrimSpace(record)) == 0 {
			continue
		}
		commit, recordError := parseCommitRecord(record, logParseSubjectConstant)
		if recordError != nil {
			return nil, recordError
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func parseCommitRecord(record string, parseSubject string) (Commit, error) {
	commit := Commit{}
	observedFields := map[string]bool{}

	for _, rawLine := range strings.Split(record, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")
		if len(line) == 0 {
			continue
		}

		fieldName, fieldValue, _ := strings.Cut(line, " ")
		observedFields[fieldName] = true

		switch fieldName {
		case commitFieldHashConstant:
			parsedHash, hashError := ParseCommitHash(fieldValue)
			if hashError != nil {
				return Commit{}, &ParseError{Subject: parseSubject, Line: line, Message: hashError.Error()}
			}
			commit.Hash = parsedHash
		case commitFieldShortConstant:
			parsedHash, hashError := ParseCommitHash(fieldValue)
			if hashError != nil {
				return Commit{}, &ParseError{Subject: parseSubject, Line: line, Message: hashError.Error()}
			}
			commit.ShortHash = parsedHash
		case commitFieldAuthorNameConstant:
			commit.AuthorName = fieldValue
		case commitFieldAuthorEmailConstant:
			commit.AuthorEmail = fieldValue
		case commitFieldTimestampConstant:
			epochSeconds, timestampError := strconv.ParseInt(fieldValue, 10, 64)
			if timestampError != nil {
				return Commit{}, &ParseError{Subject: parseSubject, Line: line, Message: commitInvalidTimestampMessageConstant}
			}
			commit.Timestamp = time.Unix(epochSeconds, 0).UTC()
		case commitFieldParentsConstant:
			for _, parentValue := range strings.Fields(fieldValue) {
				parentHash, parentError := ParseCommitHash(parentValue)
				if parentError != nil {
					return Commit{}, &ParseError{Subject: parseSubject, Line: line, Message: parentError.Error()}
				}
				commit.Parents = append(commit.Parents, parentHash)
			}
		case commitFieldMessageConstant:
			commit.Message = fieldValue
		default:
			return Commit{}, &ParseError{Subject: parseSubject, Line: line, Message: commitUnknownFieldMessageConstant}
		}
	}

	if len(observedFields) == 0 {
		return Commit{}, &ParseError{Subject: parseSubject, Message: commitEmptyOutputMessageConstant}
	}

	mandatoryFields := []string{
		commitFieldHashConstant,
		commitFieldShortConstant,
		commitFieldAuthorNameConstant,
		commitFieldAuthorEmailConstant,
		commitFieldTimestampConstant,
	}
	for _, mandatoryField := range mandatoryFields {
		if !observedFields[mandatoryField] {
			return Commit{}, &ParseError{Subject: parseSubject, Line: mandatoryField, Message: commitMissingFieldMessageConstant}
		}
	}

	return commit, nil
}

// ParseBranchListOutput parses `%(refname:short)` lines into branch names.
func ParseBranchListOutput(output string) ([]BranchName, error) {
	branchNames := []BranchName{}
	for _, rawLine := range strings.Split(output, "\n") {
		line := strings.TrimSpace(rawLine)
		if len(line) == 0 {
			continue
		}
		branchName, nameError := ParseBranchName(line)
		if nameError != nil {
			return nil, &ParseError{Subject: branchListParseSubjectConstant, Line: line, Message: nameError.Error()}
		}
		branchNames = append(branchNames, branchName)
	}
	return branchNames, nil
}

// ParseBranchDetailsOutput parses tab-separated branch detail lines.
func ParseBranchDetailsOutput(output string) ([]BranchDetails, error) {
	branchDetails := []BranchDetails{}
	for _, rawLine := range strings.Split(output, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		fields := strings.Split(line, branchDetailsFieldSeparatorConstant)
		if len(fields) != branchDetailsFieldCountConstant {
			return nil, &ParseError{Subject: branchDetailsParseSubjectConstant, Line: line, Message: branchDetailsFieldCountMessageConstant}
		}

		branchName, nameError := ParseBranchName(fields[0])
		if nameError != nil {
			return nil, &ParseError{Subject: branchDetailsParseSubjectConstant, Line: line, Message: nameError.Error()}
		}
		commitHash, hashError := ParseCommitHash(fields[1])
		if hashError != nil {
			return nil, &ParseError{Subject: branchDetailsParseSubjectConstant, Line: line, Message: hashError.Error()}
		}

		branchDetails = append(branchDetails, BranchDetails{
			Name:     branchName,
			Commit:   commitHash,
			IsHead:   strings.TrimSpace(fields[2]) == branchDetailsHeadMarkerConstant,
			Upstream: strings.TrimSpace(fields[3]),
		})
	}
	return branchDetails, nil
}

// ParseRemoteListOutput parses `git remote` lines into remote names.
func ParseRemoteListOutput(output string) ([]RemoteName, error) {
	remoteNames := []RemoteName{}
	for _, rawLine := range strings.Split(output, "\n") {
		line := strings.TrimSpace(rawLine)
		if len(line) == 0 {
			continue
		}
		remoteName, nameError := ParseRemoteName(line)
		if nameError != nil {
			return nil, &ParseError{Subject: remoteListParseSubjectConstant, Line: line, Message: nameError.Error()}
		}
		remoteNames = append(remoteNames, remoteName)
	}
	return remoteNames, nil
}
