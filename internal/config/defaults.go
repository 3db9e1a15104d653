package config

const (
	defaultConfigPath         = "~/.config/catalogue/config.toml"
	projectConfigName         = "catalogue.toml"
	defaultDataFile           = "catalogue.json"
	defaultLockTimeoutSeconds = 5
	defaultIndent             = "  "
	defaultLogLevel           = "warn"
	defaultLogFormat          = "console"
	defaultColor              = "auto"
	defaultTheme              = "classic"
)

// Default returns a configuration populated with default values. The data
// file defaults to catalogue.json in the working directory.
func Default() Config {
	return Config{
		Storage: Storage{
			DataFile:           defaultDataFile,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		Codec: Codec{
			Indent: defaultIndent,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		UI: UI{
			Color: defaultColor,
			Theme: defaultTheme,
		},
	}
}
