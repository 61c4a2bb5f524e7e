package config

const (
	defaultDataDir              = "~/.local/share/carrel"
	defaultLogDir               = "~/.local/share/carrel/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultWorkspaceDefaultName = "Default"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Workspace: Workspace{
			DefaultName: defaultWorkspaceDefaultName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
