package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"webmarcas/backend/internal/api"
	"webmarcas/backend/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("WEBMARCAS_CONFIG"), "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load configuration: %v", err)
	}
	if err := cfg.Log.ConfigureLogging(); err != nil {
		logrus.Fatalf("configure logging: %v", err)
	}

	server, err := api.NewServer(api.Config{
		DBPath:             cfg.Database.Path,
		SilentDB:           cfg.Database.Silent,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		AIConfig:           cfg.AI.OpenAIClientConfig(),
		GeminiConfig:       cfg.AI.GeminiClientConfig(),
		DisableAI:          cfg.AI.Disabled,
		AITimeout:          cfg.AI.Timeout,
		NearMatchThreshold: cfg.AI.NearMatchThreshold,
		Rules:              cfg.Scoring,
	})
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}
	defer server.Close()

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.Infof("starting webmarcas backend on %s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
