package repo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	branchesUseConstant              = "branches"
	branchesShortDescriptionConstant = "List local branches with their commits and upstreams"
	branchesLongDescriptionConstant  = "branches lists every local branch together with its tip commit, upstream, and a marker for the checked-out branch."
)

// BranchesCommandBuilder assembles the branches command.
type BranchesCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool

	directoryFlagValue string
}

// Build constructs the branches command.
func (builder *BranchesCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   branchesUseConstant,
		Short: branchesShortDescriptionConstant,
		Long:  branchesLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	registerDirectoryFlag(command, &builder.directoryFlagValue)
	return command, nil
}

func (builder *BranchesCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	branchDetails, listError := repository.ListBranchDetails(command.Context())
	if listError != nil {
		return listError
	}

	return renderYAML(command, branchDetails)
}
