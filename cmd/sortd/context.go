package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"sortd/internal/config"
	"sortd/internal/ledger"
	"sortd/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
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

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// withLockedStore runs fn with the ledger open and the instance lock held.
// The lock defends against a second sortd run mutating the same watched
// directory and ledger; it is advisory only.
func (c *commandContext) withLockedStore(fn func(cfg *config.Config, store *ledger.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another sortd instance holds %s", cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	store, err := ledger.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(cfg, store)
}
