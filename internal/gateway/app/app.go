package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"readiness/internal/agent"
	"readiness/internal/gateway/config"
	"readiness/internal/gateway/handler/rpc"
	"readiness/internal/gateway/server"
	gatewayassessment "readiness/internal/gateway/service/assessment"
	"readiness/internal/llmclient"
	"readiness/internal/logger"
	"readiness/internal/orchestrator"
	"readiness/internal/progress"
)

type App struct {
	server *server.Server
	llm    llmclient.Client
	log    *zap.Logger
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	llm, err := llmclient.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}

	stores, err := initStores(cfg, log)
	if err != nil {
		return nil, err
	}

	// Dependencies
	specialists := []agent.Specialist{
		agent.NewDataAnalyst(llm, log),
		agent.NewStrategyAdvisor(llm, log),
		agent.NewTechnicalConsultant(llm, log),
	}
	reporter := agent.NewReportGenerator(llm, log)
	orch := orchestrator.New(specialists, reporter, log)
	hub := progress.NewHub()
	svc := gatewayassessment.New(stores.assessments, stores.archive, orch, hub, cfg.RunStateTTL, log)

	assessmentHandler := rpc.NewAssessmentHandler(svc)
	progressHandler := rpc.NewProgressHandler(hub, log)

	// Routing & Server
	mux := server.NewMux(assessmentHandler, progressHandler)
	srv := server.New(cfg.Port, mux, log)

	return &App{
		server: srv,
		llm:    llm,
		log:    log,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.llm.Close(); err != nil {
		a.log.Warn("llm client close failed", zap.Error(err))
	}
	return a.server.Shutdown(ctx)
}
