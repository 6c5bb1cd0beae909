package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/hugohenrick/erp-pdv/internal/config"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("erro ao criar aplicação", "error", err)
		os.Exit(1)
	}

	if err := app.Start(ctx); err != nil {
		appLogger.Error("erro ao iniciar aplicação", "error", err)
		os.Exit(1)
	}

	wait := gfshutdown.GracefulShutdown(
		ctx,
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"api": func(ctx context.Context) error {
				appLogger.Info("encerrando aplicação")
				return app.Shutdown(ctx)
			},
		},
	)

	exitCode := <-wait
	appLogger.Info("aplicação encerrada", "exit_code", exitCode)
	_ = appLogger.Sync()
	os.Exit(exitCode)
}
