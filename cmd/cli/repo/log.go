package repo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	logUseConstant              = "log"
	logShortDescriptionConstant = "List recent commits"
	logLongDescriptionConstant  = "log reports the most recent commits reachable from HEAD, newest first."

	logLimitFlagNameConstant  = "limit"
	logLimitFlagUsageConstant = "Maximum number of commits to report; zero reports the full history."
	logLimitFlagDefaultValue  = 10
)

// LogCommandBuilder assembles the log command.
type LogCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool

	directoryFlagValue string
	limitFlagValue     int
}

// Build constructs the log command.
func (builder *LogCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   logUseConstant,
		Short: logShortDescriptionConstant,
		Long:  logLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	registerDirectoryFlag(command, &builder.directoryFlagValue)
	command.Flags().IntVar(&builder.limitFlagValue, logLimitFlagNameConstant, logLimitFlagDefaultValue, logLimitFlagUsageConstant)
	return command, nil
}

func (builder *LogCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	commits, logError := repository.Log(command.Context(), builder.limitFlagValue)
	if logError != nil {
		return logError
	}

	return renderYAML(command, commits)
}
