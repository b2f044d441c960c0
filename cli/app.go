package cli

import (
	"net/http"
	"time"

	"clementus360/meeting-agent/config"
	"clementus360/meeting-agent/engine"
	"clementus360/meeting-agent/handlers"
	"clementus360/meeting-agent/middleware"
	"clementus360/meeting-agent/pipeline"
	"clementus360/meeting-agent/routes"
)

// App holds what both serve and process need once configuration is loaded.
type App struct {
	Config config.Config
	Engine *engine.Engine
}

func newApp(opts ...engine.Option) (*App, error) {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.InitLogger(cfg.Environment, cfg.LogLevel)

	p := pipeline.New(cfg.Pipeline, time.Now, config.Logger.WithField("component", "pipeline"))
	eng, err := engine.New(p, engine.Config{
		APIKey:     cfg.APIKey,
		RunTimeout: cfg.RunTimeout,
		MaxTracked: cfg.MaxTrackedExecutions,
	}, config.Logger.WithField("component", "engine"), opts...)
	if err != nil {
		return nil, err
	}

	return &App{Config: cfg, Engine: eng}, nil
}

// Handler is the full HTTP stack: routes behind the middleware chain.
func (a *App) Handler() http.Handler {
	return newHandler(a.Engine, middleware.MaxBodyBytes)
}

func newHandler(executor handlers.MeetingExecutor, bodyLimit int64) http.Handler {
	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, handlers.New(executor))

	return middleware.Chain(
		middleware.RecoverMiddleware,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.BodyLimitMiddleware(bodyLimit),
	)(mux)
}
