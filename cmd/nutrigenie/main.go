package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/shivampatadiya-ai-hub/nutrigenie/config"
	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/app"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
