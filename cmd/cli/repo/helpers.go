package repo

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitshell/execshell"
	"github.com/temirov/gitshell/gitrepo"
	"github.com/temirov/gitshell/internal/ui"
	"github.com/temirov/gitshell/internal/utils"
	pathutils "github.com/temirov/gitshell/internal/utils/path"
)

const (
	directoryFlagNameConstant  = "directory"
	directoryFlagUsageConstant = "Repository working directory the command operates on."

	yamlRenderErrorTemplateConstant = "unable to render output: %w"
)

var repositoryDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the repository defaults resolved by the application.
type ConfigurationProvider func() Configuration

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}
	if logger := loggerProvider(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

func resolveConfiguration(configurationProvider ConfigurationProvider) Configuration {
	if configurationProvider == nil {
		return Configuration{Directory: defaultRepositoryDirectoryConstant, Remote: defaultRemoteNameConstant}
	}
	return configurationProvider()
}

func registerDirectoryFlag(command *cobra.Command, directoryFlagValue *string) {
	command.Flags().StringVar(directoryFlagValue, directoryFlagNameConstant, "", directoryFlagUsageConstant)
}

func resolveRepositoryDirectory(directoryFlagValue string, configuration Configuration) string {
	directory := strings.TrimSpace(directoryFlagValue)
	if len(directory) == 0 {
		directory = strings.TrimSpace(configuration.Directory)
	}
	if len(directory) == 0 {
		directory = defaultRepositoryDirectoryConstant
	}
	return repositoryDirectoryExpander.Expand(directory)
}

// resolveGitExecutor builds a process-backed executor, attaching the console
// event observer when human-readable logging is requested.
func resolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

func resolveRepository(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool, directory string) (*gitrepo.Repository, error) {
	gitExecutor, executorError := resolveGitExecutor(existing, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}
	return gitrepo.NewRepository(directory, gitrepo.WithExecutor(gitExecutor))
}

func renderYAML(command *cobra.Command, value any) error {
	renderedOutput, marshalError := yaml.Marshal(value)
	if marshalError != nil {
		return fmt.Errorf(yamlRenderErrorTemplateConstant, marshalError)
	}
	_, writeError := fmt.Fprint(utils.NewFlushingWriter(command.OutOrStdout()), string(renderedOutput))
	return writeError
}
