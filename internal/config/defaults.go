package config

const (
	defaultOutputDir      = "dist"
	defaultSrcDir         = "."
	defaultStaticDir      = "static"
	defaultBuiltDir       = ".nuxt/dist"
	defaultPublicPath     = "/_nuxt/"
	defaultConcurrency    = 500
	defaultCollisions     = "overwrite"
	defaultStartupSeconds = 5
	defaultTimeoutSeconds = 60
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		OutputDir:   defaultOutputDir,
		SrcDir:      defaultSrcDir,
		PublicPath:  defaultPublicPath,
		Concurrency: defaultConcurrency,
		Collisions:  defaultCollisions,
		Render: Render{
			StartupSeconds: defaultStartupSeconds,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		RouteParams:         map[string]any{},
		RouteParamsCommands: map[string][]string{},
	}
}
