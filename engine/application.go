package engine

type ApplicationConfig struct {
	// The application name used in log output.
	Name string
	// Path of the TOML scene. Empty runs the built-in vase scene.
	ScenePath string
	// Rebuild and export again every time the scene file changes.
	Watch bool
	// Overrides [application] log_level when set.
	LogLevel string
	// Overrides [application] output_dir when set.
	OutputDir string
}
