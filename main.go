// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/config"
	"github.com/LilVoxy/usaid_awards/ETL/load"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/LilVoxy/usaid_awards/database"
	"github.com/LilVoxy/usaid_awards/routes"
	"github.com/LilVoxy/usaid_awards/websocket"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "report-server",
		Short:         "Сервер отчетов по запускам ETL контрактов USAID",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "etl.yaml", "путь к файлу конфигурации")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	etlLogger := utils.OpenETLLogger(cfg.EnableDetailedLogging, cfg.LogDir)
	defer etlLogger.Close()
	logger := etlLogger.Zap().Named("server")

	conn, err := config.ConnectDatabase(cfg.Warehouse)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(conn); err != nil {
			logger.Error("Ошибка при закрытии хранилища", zap.Error(err))
		}
	}()
	logger.Info("Подключение к хранилищу установлено", zap.String("driver", cfg.Warehouse.Driver))

	if err := load.EnsureSchema(conn.DB, conn.Dialect); err != nil {
		return err
	}

	store := database.NewStore(conn.DB, string(conn.Dialect))

	// Хаб WebSocket и наблюдатель за журналом запусков
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	watcher := websocket.NewRunWatcher(store, hub, logger)
	if err := watcher.Prime(); err != nil {
		return err
	}
	if err := watcher.Start(cfg.Server.PollInterval); err != nil {
		return err
	}
	defer watcher.Stop()

	router := mux.NewRouter()
	routes.SetupRoutes(router, store, hub.HandleConnections, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ошибка при остановке сервера", zap.Error(err))
		}
	}()

	logger.Info("Сервер отчетов запущен", zap.String("addr", cfg.Server.Addr), zap.Duration("poll_interval", cfg.Server.PollInterval))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка сервера: %w", err)
	}

	logger.Info("Сервер отчетов остановлен")
	return nil
}
