package configs

import (
	"flag"
	"os"

	"github.com/hilthontt/rendezvous/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the -config flag, the
// RENDEZVOUS_CONFIG env var, or a few conventional locations. An empty
// result is fine: Load falls back to defaults and env overrides, so the
// relay runs with no config file at all.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("RENDEZVOUS_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/rendezvous/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
