package main

import (
	"log/slog"
	"strings"
	"sync"

	"weft/internal/config"
	"weft/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	ring       *logging.Ring
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger once, with the in-memory ring sink
// attached so `process --show-log` can replay the run afterwards.
func (c *commandContext) ensureLogger() (*slog.Logger, *logging.Ring, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	c.loggerOnce.Do(func() {
		c.ring = logging.NewRing(cfg.Logging.RingCapacity)
		logger, logErr := logging.NewFromConfig(cfg, c.ring)
		if logErr != nil {
			c.loggerErr = logErr
			return
		}
		c.logger = logger
	})
	return c.logger, c.ring, c.loggerErr
}
