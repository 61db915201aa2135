package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	flagConfig    = "config"
	flagEnvFile   = "env-file"
	flagStaticDir = "static-dir"
	flagAPIPrefix = "api-prefix"
	flagLogLevel  = "log-level"
)

// RegisterFlags adds the configuration flags to fs.
//
// Flags:
//
//	-c/--config  json file path with configs
//	--env-file   dotenv file loaded into the environment (default .env)
//	--static-dir directory served at "/"
//	--api-prefix path prefix of the mounted router
//	--log-level  zerolog level name
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON config file path")
	fs.String(flagEnvFile, DefaultDotEnvFile, "dotenv file loaded into the environment")
	fs.String(flagStaticDir, "", "directory with static files (default \"public\")")
	fs.String(flagAPIPrefix, "", "path prefix of the API router (default \"/api\")")
	fs.String(flagLogLevel, "", "log level: debug, info, warn, error (default \"info\")")
}

// DotEnvPath returns the value of --env-file, or [DefaultDotEnvFile] when fs
// is nil or the flag is not registered.
func DotEnvPath(fs *pflag.FlagSet) string {
	if fs == nil {
		return DefaultDotEnvFile
	}

	path, err := fs.GetString(flagEnvFile)
	if err != nil || path == "" {
		return DefaultDotEnvFile
	}

	return path
}

// parseFlags builds a partial config from flags that were explicitly set.
// Unset flags stay zero so they never override env or JSON values.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	stringFlags := []struct {
		name   string
		target *string
	}{
		{flagConfig, &cfg.JSONFilePath},
		{flagStaticDir, &cfg.Server.StaticDir},
		{flagAPIPrefix, &cfg.Server.APIPrefix},
		{flagLogLevel, &cfg.App.LogLevel},
	}

	for _, f := range stringFlags {
		if fs.Lookup(f.name) == nil || !fs.Changed(f.name) {
			continue
		}
		value, err := fs.GetString(f.name)
		if err != nil {
			return nil, fmt.Errorf("error reading flag --%s: %w", f.name, err)
		}
		*f.target = value
	}

	return cfg, nil
}
