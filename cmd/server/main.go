package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signature_go/internal/config"
	"signature_go/internal/server"
	"signature_go/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	displayBanner()

	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Erro ao carregar configurações", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("%v, usando INFO", err)
	}
	logger.SetLevel(level)

	if cfg.Log.FileEnabled {
		if err := os.MkdirAll(cfg.Log.Dir, 0755); err != nil {
			logger.Warnf("Não foi possível criar %s: %v", cfg.Log.Dir, err)
		} else if err := logger.EnableFileLogging(cfg.Log.Dir, "signature-"+cfg.Server.Role); err != nil {
			logger.Warnf("Log em arquivo desabilitado: %v", err)
		}
	}

	logger.Infof("Configuração carregada: papel %s, porta %d, alvo %d amostras a %.0f Hz",
		cfg.Server.Role, cfg.Server.Port, cfg.Pipeline.TargetLength, cfg.Pipeline.TargetFrequency)
	logger.Infof("Traços aceitos: %d a %d pontos, preenchimento %s",
		cfg.Ingestion.MinStrokePoints, cfg.Ingestion.MaxStrokePoints, cfg.Ingestion.PaddingStrategy)

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("Erro ao criar servidor", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Erro ao iniciar o servidor", err)
		}
	}()

	// Configurar captura de sinais para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Desligando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Erro durante o shutdown do servidor", err)
	}

	logger.Info("Servidor encerrado com sucesso")
}

// displayBanner exibe um banner de inicialização
func displayBanner() {
	banner := `
  ____  _                   _
 / ___|(_) __ _ _ __   __ _| |_ _   _ _ __ ___
 \___ \| |/ _' | '_ \ / _' | __| | | | '__/ _ \
  ___) | | (_| | | | | (_| | |_| |_| | | |  __/
 |____/|_|\__, |_| |_|\__,_|\__|\__,_|_|  \___|
          |___/          VALIDATION SERVICE  v1.0
 `
	fmt.Println(banner)
	fmt.Printf("Iniciando em %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
}
