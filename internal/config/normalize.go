package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	c.Library.ConflictStrategy = strings.ToLower(strings.TrimSpace(c.Library.ConflictStrategy))
	if c.Library.ConflictStrategy == "" {
		c.Library.ConflictStrategy = defaultConflictStrategy
	}
	c.Library.SeasonFolderTemplate = strings.TrimSpace(c.Library.SeasonFolderTemplate)
	if c.Library.SeasonFolderTemplate == "" {
		c.Library.SeasonFolderTemplate = defaultSeasonFolderTemplate
	}
	if c.Library.PathMax == 0 {
		c.Library.PathMax = defaultPathMax
	}
	if c.Library.Workers < 0 {
		c.Library.Workers = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RingCapacity <= 0 {
		c.Logging.RingCapacity = defaultRingCapacity
	}
}
