package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Output: OutputConfig{
			Directory: defaultOutputDir,
		},
		Diagrams: DiagramConfig{
			Enabled: true,
			Binary:  defaultDiagramBinary,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    defaultHistoryPath,
		},
		Notifications: NotificationConfig{
			Enabled: false,
			NATSURL: defaultNATSURL,
			Subject: defaultNATSSubject,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  defaultMetricsListen,
		},
		Watch: WatchConfig{
			Debounce: "300ms",
			Resync:   "",
		},
		Workspace: defaultWorkspace,
		Sources: []Repository{
			{
				URL:    "https://github.com/example/docs.git",
				Name:   "docs",
				Branch: "main",
				Paths:  []string{"docs"},
				Auth: &AuthConfig{
					Type:  "token",
					Token: "${GIT_TOKEN}",
				},
			},
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
