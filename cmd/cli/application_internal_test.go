package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testStatusCommandNameConstant   = "status"
	testBranchesCommandNameConstant = "branches"
	testShowCommandNameConstant     = "show"
	testLogCommandNameConstant      = "log"
	testRemotesCommandNameConstant  = "remotes"
	testCloneCommandNameConstant    = "clone"
)

func TestNewApplicationRegistersRepositoryCommands(testInstance *testing.T) {
	application := NewApplication()

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	expectedCommandNames := []string{
		testStatusCommandNameConstant,
		testBranchesCommandNameConstant,
		testShowCommandNameConstant,
		testLogCommandNameConstant,
		testRemotesCommandNameConstant,
		testCloneCommandNameConstant,
	}
	for _, expectedCommandName := range expectedCommandNames {
		require.True(testInstance, registeredCommandNames[expectedCommandName], expectedCommandName)
	}
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(testInstance *testing.T) {
	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(testInstance, initializationError)

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, ".", application.configuration.Repository.Directory)
	require.Equal(testInstance, "origin", application.configuration.Repository.Remote)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}

func TestLogFormatFlagEnablesHumanReadableLogging(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "console"))
	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestRunRootCommandLogsResolvedConfigurationFile(testInstance *testing.T) {
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("common:\n  log_level: debug\n"), 0o600))

	application := NewApplication()
	application.configurationFilePath = configurationFilePath
	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	observedCore, observedLogs := observer.New(zap.DebugLevel)
	application.logger = zap.New(observedCore)
	application.rootCommand.SetOut(new(bytes.Buffer))
	application.rootCommand.SetErr(new(bytes.Buffer))

	require.NoError(testInstance, application.runRootCommand(application.rootCommand, nil))

	debugEntries := observedLogs.FilterMessage(rootCommandDebugMessageConstant).All()
	require.Len(testInstance, debugEntries, 1)
	require.Equal(testInstance, configurationFilePath, debugEntries[0].ContextMap()[configurationFileFieldConstant])
}

func TestEmbeddedDefaultConfigurationRoundTrip(testInstance *testing.T) {
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, embeddedConfiguration)
	require.Equal(testInstance, configurationTypeConstant, embeddedConfigurationType)
}
