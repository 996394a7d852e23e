// Package where resolves application-specific filesystem paths across platforms.
package where

import (
	"os"
	"path/filepath"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "DASHGRAB_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring DASHGRAB_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Assets resolves the directory scanned for Lua asset provider scripts.
func Assets() string {
	return ensureDir(filepath.Join(Config(), "assets"))
}

// Listings resolves the directory of cached input listings.
func Listings() string {
	return ensureDir(filepath.Join(Cache(), "listings"))
}

// Preference resolves the file holding remembered download preferences.
func Preference() string {
	return filepath.Join(Config(), "preference.json")
}
