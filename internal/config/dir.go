// Package config resolves sestmpl settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "sestmpl"

// Dir returns the sestmpl configuration directory.
//
// Resolution:
//   - $SESTMPL_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/sestmpl if set
//   - %AppData%/sestmpl on Windows
//   - ~/.config/sestmpl elsewhere
func Dir() string {
	if dir := os.Getenv("SESTMPL_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// EnvFiles returns the env files to load, highest priority first.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}
