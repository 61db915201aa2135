package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultDotEnvFile is the dotenv file loaded when --env-file is not given.
const DefaultDotEnvFile = ".env"

// ErrDotEnvNotFound is returned by [LoadDotEnv] when the file does not exist.
// Callers treat it as informational: a missing file is not a startup error.
var ErrDotEnvNotFound = errors.New("dotenv file not found")

// LoadDotEnv reads key=value pairs from path into the process environment.
// Variables that are already set are left untouched.
//
// It must run before [GetStructuredConfig] so that file values take part in
// env parsing.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultDotEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDotEnvNotFound, path)
		}
		return fmt.Errorf("error loading dotenv file %s: %w", path, err)
	}

	return nil
}
