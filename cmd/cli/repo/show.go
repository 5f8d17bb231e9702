package repo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	showUseConstant              = "show [revision]"
	showShortDescriptionConstant = "Describe a single commit"
	showLongDescriptionConstant  = "show resolves the given revision (HEAD when omitted) and reports the commit hash, author, timestamp, parents, and subject."
)

// ShowCommandBuilder assembles the show command.
type ShowCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool

	directoryFlagValue string
}

// Build constructs the show command.
func (builder *ShowCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   showUseConstant,
		Short: showShortDescriptionConstant,
		Long:  showLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}
	registerDirectoryFlag(command, &builder.directoryFlagValue)
	return command, nil
}

func (builder *ShowCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	repositoryDirectory := resolveRepositoryDirectory(builder.directoryFlagValue, configuration)

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	repository, repositoryError := resolveRepository(builder.GitExecutor, resolveLogger(builder.LoggerProvider), humanReadableLogging, repositoryDirectory)
	if repositoryError != nil {
		return repositoryError
	}

	requestedRevision := ""
	if len(arguments) > 0 {
		requestedRevision = arguments[0]
	}

	commit, showError := repository.ShowCommit(command.Context(), requestedRevision)
	if showError != nil {
		return showError
	}

	return renderYAML(command, commit)
}
