// Package config registers every setting with its default and wires viper to
// the config file and DASHGRAB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup applies defaults, binds environment variables and reads dashgrab.toml
// when present. A missing file is not an error.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		if err := viper.BindEnv(env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}
