package config

import (
	"errors"
	"fmt"
	"strings"
)

var validConflictStrategies = map[string]struct{}{
	"skip":      {},
	"overwrite": {},
	"rename":    {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if _, ok := validConflictStrategies[c.Library.ConflictStrategy]; !ok {
		return fmt.Errorf("library.conflict_strategy: unsupported value %q (use skip, overwrite, or rename)", c.Library.ConflictStrategy)
	}
	if c.Library.PathMax < 64 {
		return fmt.Errorf("library.path_max must be at least 64, got %d", c.Library.PathMax)
	}
	if !strings.Contains(c.Library.SeasonFolderTemplate, "{season") {
		return fmt.Errorf("library.season_folder_template %q carries no {season} placeholder", c.Library.SeasonFolderTemplate)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	return nil
}
