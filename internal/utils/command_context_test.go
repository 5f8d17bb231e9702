package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitshell/internal/utils"
)

const testConfigurationFilePathConstant = "/tmp/gitshell/config.yaml"

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(context.Background(), testConfigurationFilePathConstant)
	storedPath, pathAvailable := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, pathAvailable)
	require.Equal(testInstance, testConfigurationFilePathConstant, storedPath)
}

func TestCommandContextAccessorMissingValue(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	storedPath, pathAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, pathAvailable)
	require.Empty(testInstance, storedPath)
}
