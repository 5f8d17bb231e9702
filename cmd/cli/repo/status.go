package repo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	statusUseConstant              = "status"
	statusShortDescriptionConstant = "Report the current branch and pending changes"
	statusLongDescriptionConstant  = "status inspects the repository working directory and reports the checked-out branch together with every staged, modified, untracked, and conflicted path."
)

type statusReport struct {
	Branch  string                `yaml:"branch"`
	Clean   bool                  `yaml:"clean"`
	Entries []gitrepo.StatusEntry `yaml:"entries"`
}

// StatusCommandBuilder assembles the status command.
type StatusCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool

	directoryFlagValue string
}

// Build constructs the status command.
func (builder *StatusCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   statusUseConstant,
		Short: statusShortDescriptionConstant,
		Long:  statusLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	registerDirectoryFlag(command, &builder.directoryFlagValue)
	return command, nil
}

func (builder *StatusCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	repositoryStatus, statusError := repository.Status(command.Context())
	if statusError != nil {
		return statusError
	}

	return renderYAML(command, statusReport{
		Branch:  repositoryStatus.Branch,
		Clean:   repositoryStatus.IsClean(),
		Entries: repositoryStatus.Entries,
	})
}
