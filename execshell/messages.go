package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	subjectStartTemplateConstant            = "%s %s%s"
	subjectSuccessTemplateConstant          = "%s %s%s"
	subjectFailureTemplateConstant          = "Failed %s %s%s (exit code %d%s)"
	subjectExecutionFailureTemplateConstant = "Error %s %s%s: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	unknownFailureMessageConstant           = "unknown error"
	repositoryContentsSubjectConstant       = "repository contents"
	headSubjectConstant                     = "HEAD"
)

type subcommandVocabulary struct {
	startVerb   string
	successVerb string
	failureVerb string
}

// Lifecycle vocabulary for the git subcommands gitshell issues. Anything
// absent falls back to the generic command-label messages.
var gitSubcommandVocabularies = map[string]subcommandVocabulary{
	"status":      {startVerb: "Reviewing status of", successVerb: "Collected status of", failureVerb: "reviewing status of"},
	"branch":      {startVerb: "Listing branches for", successVerb: "Listed branches for", failureVerb: "listing branches for"},
	"switch":      {startVerb: "Switching to", successVerb: "Switched to", failureVerb: "switching to"},
	"checkout":    {startVerb: "Checking out", successVerb: "Checked out", failureVerb: "checking out"},
	"add":         {startVerb: "Staging", successVerb: "Staged", failureVerb: "staging"},
	"rm":          {startVerb: "Removing", successVerb: "Removed", failureVerb: "removing"},
	"commit":      {startVerb: "Committing", successVerb: "Committed", failureVerb: "committing"},
	"push":        {startVerb: "Pushing", successVerb: "Pushed", failureVerb: "pushing"},
	"pull":        {startVerb: "Pulling", successVerb: "Pulled", failureVerb: "pulling"},
	"fetch":       {startVerb: "Fetching", successVerb: "Fetched", failureVerb: "fetching"},
	"clone":       {startVerb: "Cloning", successVerb: "Cloned", failureVerb: "cloning"},
	"init":        {startVerb: "Initializing", successVerb: "Initialized", failureVerb: "initializing"},
	"remote":      {startVerb: "Inspecting remotes of", successVerb: "Inspected remotes of", failureVerb: "inspecting remotes of"},
	"config":      {startVerb: "Reading configuration of", successVerb: "Read configuration of", failureVerb: "reading configuration of"},
	"rev-parse":   {startVerb: "Resolving", successVerb: "Resolved", failureVerb: "resolving"},
	"show":        {startVerb: "Describing", successVerb: "Described", failureVerb: "describing"},
	"log":         {startVerb: "Reading history of", successVerb: "Read history of", failureVerb: "reading history of"},
	"ls-files":    {startVerb: "Listing tracked files of", successVerb: "Listed tracked files of", failureVerb: "listing tracked files of"},
	"rebase":      {startVerb: "Rebasing onto", successVerb: "Rebased onto", failureVerb: "rebasing onto"},
	"cherry-pick": {startVerb: "Cherry-picking", successVerb: "Cherry-picked", failureVerb: "cherry-picking"},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	vocabulary, vocabularyKnown := gitSubcommandVocabularies[subcommand]
	if !vocabularyKnown {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subject := formatter.describeSubject(subcommand, command.Details.Arguments[1:])
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(subjectStartTemplateConstant, vocabulary.startVerb, subject, workingDirectorySuffix)
	case messageStageSuccess:
		return fmt.Sprintf(subjectSuccessTemplateConstant, vocabulary.successVerb, subject, workingDirectorySuffix)
	case messageStageFailure:
		return fmt.Sprintf(subjectFailureTemplateConstant, vocabulary.failureVerb, subject, workingDirectorySuffix, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(subjectExecutionFailureTemplateConstant, vocabulary.failureVerb, subject, workingDirectorySuffix, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeSubject(subcommand string, arguments []string) string {
	switch subcommand {
	case "status", "branch", "remote", "config", "log", "ls-files", "init":
		return repositoryContentsSubjectConstant
	case "commit":
		return "staged changes"
	case "pull", "push", "fetch", "clone", "switch", "checkout", "rev-parse", "show", "rebase", "cherry-pick", "add", "rm":
		firstOperand := formatter.firstNonFlagArgument(arguments)
		if len(firstOperand) > 0 {
			return firstOperand
		}
		return headSubjectConstant
	default:
		return repositoryContentsSubjectConstant
	}
}

func (formatter CommandMessageFormatter) firstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return ""
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return ""
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
