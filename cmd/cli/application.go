package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitshell/cmd/cli/repo"
	"github.com/temirov/gitshell/internal/utils"
	flagutils "github.com/temirov/gitshell/internal/utils/flags"
)

const (
	applicationNameConstant             = "gitshell"
	applicationShortDescriptionConstant = "Structured command-line interface over the git binary"
	applicationLongDescriptionConstant  = "gitshell shells out to the installed git binary and renders branches, commits, remotes, and working tree state as structured output."

	configFileFlagNameConstant  = "config"
	configFileFlagUsageConstant = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant    = "log-level"
	logLevelFlagDescription     = "Minimum level of log entries."
	logFormatFlagNameConstant   = "log-format"
	logFormatFlagDescription    = "Encoding of log entries."
	logFileFlagNameConstant     = "log-file"
	logFileFlagUsageConstant    = "Optional path to a rotated log file that duplicates log entries."

	commonConfigurationKeyConstant     = "common"
	commonLogLevelConfigKeyConstant    = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant   = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant     = commonConfigurationKeyConstant + ".log_file"
	repositoryConfigurationKeyConstant = "repository"

	environmentPrefixConstant              = "GITSHELL"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	defaultConfigurationSearchPathConstant = "."

	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"

	rootCommandInfoMessageConstant  = "gitshell CLI executed"
	rootCommandDebugMessageConstant = "gitshell CLI diagnostics"
	logFieldCommandNameConstant     = "command_name"
	logFieldArgumentCountConstant   = "argument_count"
	logFieldArgumentsConstant       = "arguments"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common     ApplicationCommonConfiguration `mapstructure:"common"`
	Repository repo.Configuration             `mapstructure:"repository"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	logFileFlagValue       string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(
			string(utils.LogLevelInfo),
			[]string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
			logLevelFlagDescription,
		),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(
			string(utils.LogFormatStructured),
			[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
			logFormatFlagDescription,
		),
	)
	cobraCommand.PersistentFlags().StringVar(&application.logFileFlagValue, logFileFlagNameConstant, "", logFileFlagUsageConstant)

	application.registerRepositoryCommands(cobraCommand)
	application.rootCommand = cobraCommand

	return application
}

func (application *Application) registerRepositoryCommands(rootCommand *cobra.Command) {
	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	configurationProvider := func() repo.Configuration {
		return application.configuration.Repository
	}

	statusBuilder := repo.StatusCommandBuilder{
		LoggerProvider:               loggerProvider,
		ConfigurationProvider:        configurationProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if statusCommand, statusBuildError := statusBuilder.Build(); statusBuildError == nil {
		rootCommand.AddCommand(statusCommand)
	}

	branchesBuilder := repo.BranchesCommandBuilder{
		LoggerProvider:               loggerProvider,
		ConfigurationProvider:        configurationProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if branchesCommand, branchesBuildError := branchesBuilder.Build(); branchesBuildError == nil {
		rootCommand.AddCommand(branchesCommand)
	}

	showBuilder := repo.ShowCommandBuilder{
		LoggerProvider:               loggerProvider,
		ConfigurationProvider:        configurationProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if showCommand, showBuildError := showBuilder.Build(); showBuildError == nil {
		rootCommand.AddCommand(showCommand)
	}

	logBuilder := repo.LogCommandBuilder{
		LoggerProvider:               loggerProvider,
		ConfigurationProvider:        configurationProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if logCommand, logBuildError := logBuilder.Build(); logBuildError == nil {
		rootCommand.AddCommand(logCommand)
	}

	remotesBuilder := repo.RemotesCommandBuilder{
		LoggerProvider:               loggerProvider,
		ConfigurationProvider:        configurationProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if remotesCommand, remotesBuildError := remotesBuilder.Build(); remotesBuildError == nil {
		rootCommand.AddCommand(remotesCommand)
	}

	cloneBuilder := repo.CloneCommandBuilder{
		LoggerProvider:               loggerProvider,
		ConfigurationProvider:        configurationProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if cloneCommand, cloneBuildError := cloneBuilder.Build(); cloneBuildError == nil {
		rootCommand.AddCommand(cloneCommand)
	}
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
		commonLogFileConfigKeyConstant:   "",
	}
	for configurationKey, configurationValue := range repo.DefaultConfigurationValues(repositoryConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, logFileFlagNameConstant) {
		application.configuration.Common.LogFile = application.logFileFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLoggerWithFile(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
		application.configuration.Common.LogFile,
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	configurationFilePath, _ := application.commandContextAccessor.ConfigurationFilePath(command.Context())
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
		zap.String(configurationFileFieldConstant, configurationFilePath),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
