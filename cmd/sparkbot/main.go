package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/trepalabs/sparkbot/bot"
	"github.com/trepalabs/sparkbot/core/cmd"
	coreconfig "github.com/trepalabs/sparkbot/core/config"
)

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return carrier{cfg: cfg}, nil
		},
		Bootstrap: func(cfg cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return bot.New(cfg.CoreConfig())
		},
	})
	if err != nil {
		log.Fatalf("sparkbot: %v", err)
	}
}

type carrier struct {
	cfg *coreconfig.Config
}

func (c carrier) CoreConfig() *coreconfig.Config {
	return c.cfg
}
