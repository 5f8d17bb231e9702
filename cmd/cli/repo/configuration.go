package repo

const (
	directoryConfigurationKeySuffixConstant = ".directory"
	remoteConfigurationKeySuffixConstant    = ".remote"

	defaultRepositoryDirectoryConstant = "."
	defaultRemoteNameConstant          = "origin"
)

// Configuration captures repository defaults shared by the subcommands.
type Configuration struct {
	Directory string `mapstructure:"directory"`
	Remote    string `mapstructure:"remote"`
}

// DefaultConfigurationValues lists the configuration defaults registered under configurationKeyPrefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + directoryConfigurationKeySuffixConstant: defaultRepositoryDirectoryConstant,
		configurationKeyPrefix + remoteConfigurationKeySuffixConstant:    defaultRemoteNameConstant,
	}
}
