package config

import (
	"os"
	"path/filepath"
)

const (
	defaultOutputDir     = "./output"
	defaultDiagramBinary = "mmdc"
	defaultHistoryPath   = "./mddocx-history.db"
	defaultNATSURL       = "nats://127.0.0.1:4222"
	defaultNATSSubject   = "mddocx.conversions"
	defaultMetricsListen = ":9090"
	defaultWorkspace     = "./workspace"
)

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{
		Diagrams: DiagramConfig{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(config *Config) {
	if config.Output.Directory == "" {
		config.Output.Directory = defaultOutputDir
	}
	if config.Diagrams.Binary == "" {
		config.Diagrams.Binary = defaultDiagramBinary
	}
	if config.Diagrams.TempDir == "" {
		config.Diagrams.TempDir = filepath.Join(os.TempDir(), "mddocx")
	}
	if config.History.Path == "" {
		config.History.Path = defaultHistoryPath
	}
	if config.Notifications.NATSURL == "" {
		config.Notifications.NATSURL = defaultNATSURL
	}
	if config.Notifications.Subject == "" {
		config.Notifications.Subject = defaultNATSSubject
	}
	if config.Metrics.Listen == "" {
		config.Metrics.Listen = defaultMetricsListen
	}
	if config.Workspace == "" {
		config.Workspace = defaultWorkspace
	}

	for i := range config.Sources {
		if len(config.Sources[i].Paths) == 0 {
			config.Sources[i].Paths = []string{"."}
		}
		if config.Sources[i].Branch == "" {
			config.Sources[i].Branch = "main"
		}
	}
}
