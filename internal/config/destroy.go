package config

import (
	"errors"
	"os"

	"github.com/tauraamui/dragoneye/pkg/configdef"
	"github.com/tauraamui/xerror"
)

func destroy() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if err := fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return configdef.ErrConfigNotFound
		}
		return xerror.Errorf("unable to delete config file: %s: %w", path, err)
	}
	return nil
}
