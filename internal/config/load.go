package config

import (
	"encoding/json"
	"errors"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/dragoneye/pkg/configdef"
	"github.com/tauraamui/dragoneye/pkg/log"
	"gopkg.in/yaml.v3"
)

func load() (configdef.Values, error) {
	var values configdef.Values

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	log.Info("Resolved config file location: %s", configPath)
	file, err := readConfigFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("No config file at %s, using defaults...", configPath)
			return defaultValues(), nil
		}
		return configdef.Values{}, err
	}

	if err := unmarshal(configPath, file, &values); err != nil {
		return configdef.Values{}, err
	}

	applyDefaults(&values)

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

var readConfigFile = func(path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

func unmarshal(path string, content []byte, values *configdef.Values) error {
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(content, values)
	} else {
		err = json.Unmarshal(content, values)
	}
	if err != nil {
		return pkgerrors.Errorf("parsing configuration error: %v", err)
	}
	return nil
}
