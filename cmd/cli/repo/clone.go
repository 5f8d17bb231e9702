package repo

import (
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/gitshell/gitrepo"
)

const (
	cloneUseConstant              = "clone <url> [path]"
	cloneShortDescriptionConstant = "Clone a remote repository"
	cloneLongDescriptionConstant  = "clone validates the repository URL, clones it into the given path (derived from the URL when omitted), and prints the resulting directory."

	cloneRepositorySuffixConstant = ".git"
	cloneResultTemplateConstant   = "cloned %s into %s\n"
)

// CloneCommandBuilder assembles the clone command.
type CloneCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool
}

// Build constructs the clone command.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneUseConstant,
		Short: cloneShortDescriptionConstant,
		Long:  cloneLongDescriptionConstant,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryURL, urlError := gitrepo.ParseRepositoryURL(arguments[0])
	if urlError != nil {
		return urlError
	}

	targetPath := ""
	if len(arguments) > 1 {
		targetPath = arguments[1]
	}
	if len(strings.TrimSpace(targetPath)) == 0 {
		targetPath = deriveClonePath(repositoryURL)
	}
	targetPath = repositoryDirectoryExpander.Expand(targetPath)

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := resolveGitExecutor(builder.GitExecutor, resolveLogger(builder.LoggerProvider), humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repository, cloneError := gitrepo.Clone(command.Context(), repositoryURL, targetPath, gitrepo.WithExecutor(gitExecutor))
	if cloneError != nil {
		return cloneError
	}

	command.Printf(cloneResultTemplateConstant, repositoryURL.String(), repository.Path())
	return nil
}

// deriveClonePath mirrors git's default directory naming for a clone target.
func deriveClonePath(repositoryURL gitrepo.RepositoryURL) string {
	urlValue := strings.TrimSuffix(repositoryURL.String(), "/")
	urlValue = strings.TrimSuffix(urlValue, cloneRepositorySuffixConstant)
	if separatorIndex := strings.LastIndex(urlValue, ":"); separatorIndex >= 0 && !strings.Contains(urlValue[separatorIndex:], "/") {
		urlValue = urlValue[separatorIndex+1:]
	}
	return path.Base(urlValue)
}
