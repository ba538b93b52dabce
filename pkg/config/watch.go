package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/registryops/eppproxy/internal/logger"
)

// Watch re-reads the global file whenever it changes and hands the
// freshly loaded configuration to apply. Only runtime-safe settings
// (logging level) should be acted on; the caller logs a restart-required
// warning for structural changes. Registry files are not watched.
func Watch(configPath string, apply func(*Config)) error {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return err
	}
	if !found {
		// Nothing on disk to watch.
		return nil
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		logger.Debug("config file changed", "path", event.Name, "op", event.Op.String())
		cfg, err := Load(configPath)
		if err != nil {
			logger.Warn("ignoring config change that fails to load", "error", err)
			return
		}
		apply(cfg)
	})
	v.WatchConfig()
	return nil
}
