package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// Parse converts command-line values into the type of the field default.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, errors.New("no value given")
	}

	switch f.Value.(type) {
	case string:
		return values[0], nil
	case int:
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", f.Key, values[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", f.Key, values[0])
		}
		return b, nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("%s has an unsupported type %s", f.Key, f.typeName())
	}
}

// Write persists the current settings, creating the config file when missing.
func Write() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}
