// Package envfile loads environment variables from .env files.
// Variables already set to a non-empty value take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the environment.
// Returns nil if the file doesn't exist.
func Load(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// LoadAll loads files in priority order; for each variable the first file
// that defines it wins. Unreadable files are skipped and returned as paths.
func LoadAll(paths ...string) []string {
	var failed []string
	for _, path := range paths {
		if err := Load(path); err != nil {
			failed = append(failed, path)
		}
	}
	return failed
}
