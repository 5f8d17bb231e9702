package repo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	remotesUseConstant              = "remotes"
	remotesShortDescriptionConstant = "List configured remotes with their fetch URLs"
	remotesLongDescriptionConstant  = "remotes reports every configured remote together with the fetch URL stored in the repository configuration."
)

// RemotesCommandBuilder assembles the remotes command.
type RemotesCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool

	directoryFlagValue string
}

// Build constructs the remotes command.
func (builder *RemotesCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   remotesUseConstant,
		Short: remotesShortDescriptionConstant,
		Long:  remotesLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	registerDirectoryFlag(command, &builder.directoryFlagValue)
	return command, nil
}

func (builder *RemotesCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	remoteDetails, listError := repository.ListRemoteDetails(command.Context())
	if listError != nil {
		return listError
	}

	return renderYAML(command, remoteDetails)
}
