package bot

import (
	"context"
	"fmt"
	"time"

	coreconfig "github.com/trepalabs/sparkbot/core/config"
	tg "github.com/trepalabs/sparkbot/core/telegram"
	"github.com/trepalabs/sparkbot/core/telegram/commands"
	"github.com/trepalabs/sparkbot/core/telegram/router"
	"github.com/trepalabs/sparkbot/keepalive"
	"github.com/trepalabs/sparkbot/spark"
	"github.com/trepalabs/sparkbot/spark/sessions"
)

// App assembles the spark submission bot: session store, submission service,
// Telegram wiring, and the keep-alive HTTP responder.
type App struct {
	cfg     *coreconfig.Config
	store   *sessions.Store
	fetcher spark.Fetcher

	// svc is assigned in the OnStart hook once the bot instance exists,
	// before any update is processed.
	svc *spark.Service

	keepalive *keepalive.Server
}

// New builds the application from validated configuration.
func New(cfg *coreconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config provided")
	}
	return &App{
		cfg:   cfg,
		store: sessions.NewStore(),
		fetcher: spark.NewHTTPFetcher(
			time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
			cfg.Fetch.MaxBodyBytes,
		),
	}, nil
}

// CoreConfig exposes the embedded configuration to the runner.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg
}

func (a *App) service() *spark.Service {
	return a.svc
}

// TelegramRunOptions wires commands, routes, and lifecycle hooks for the bot runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Introduction to Trepa and what this bot can do",
	})
	reg.RegisterCommand("/sendspark", commands.Command{
		Handler:     a.handleSendspark,
		Description: "Submit a spark (your thought-provoking question)",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Stop the current spark submission",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "See this guide again",
	})
	reg.SetTextFallback(a.handleFallback)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.MessageRoutes(a, reg, router.MessageOptions{
		UnexpectedPhoto: a.handleStrayPhoto,
	})...)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.svc = spark.NewService(
				a.store,
				spark.NewBotTransport(rt.Bot),
				a.fetcher,
				a.cfg.Telegram.AdminID,
			)

			a.keepalive = keepalive.New(a.cfg.Liveness.Listen, a.cfg.Liveness.Port)
			a.keepalive.Start()
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			if a.keepalive == nil {
				return nil
			}
			return a.keepalive.Shutdown(ctx)
		},
	}, nil
}
