package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tripplanner/pkg/agent"
	"tripplanner/pkg/config"
	"tripplanner/pkg/logging"
	"tripplanner/pkg/ui"
	"tripplanner/pkg/version"

	tea "charm.land/bubbletea/v2"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to the config file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	client, err := agent.NewClient(cfg.Query)
	if err != nil {
		return fmt.Errorf("creating query client: %w", err)
	}

	logger.Info("tripplanner_start",
		"version", version.Summary(),
		"endpoint", client.Endpoint(),
		"config_path", configPath,
	)

	program := tea.NewProgram(ui.NewModel(client, client.Endpoint()))
	if _, err := program.Run(); err != nil {
		slog.Error("tripplanner_exit_error", "error", err)
		return fmt.Errorf("running ui: %w", err)
	}

	logger.Info("tripplanner_exit")
	return nil
}
