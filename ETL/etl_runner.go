package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/config"
	"github.com/LilVoxy/usaid_awards/ETL/extractors"
	"github.com/LilVoxy/usaid_awards/ETL/load"
	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/report"
	"github.com/LilVoxy/usaid_awards/ETL/rollup"
	"github.com/LilVoxy/usaid_awards/ETL/transform"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/LilVoxy/usaid_awards/processor"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ETLRunner связывает фазы Extract, Transform и Load и ведет журнал запусков.
// Фазы создаются на каждый запуск с логгером, помеченным run_id.
type ETLRunner struct {
	config       config.ETLConfig
	dbConn       *config.DBConnection
	logger       *utils.ETLLogger
	sector       rollup.Rollup
	organization rollup.Rollup
	etlLogRepo   models.ETLLogRepository
	out          io.Writer
}

// RunOptions - параметры одного запуска
type RunOptions struct {
	// Без базы данных: только печать сводок
	DryRun bool
	// Путь выгрузки объединенной таблицы (.csv или .xlsx)
	ExportPath string
}

// RunResult - итог одного запуска
type RunResult struct {
	RunID string
	Data  *models.TransformedData
}

// NewETLRunner создает новый экземпляр ETLRunner.
// В режиме dryRun подключение к хранилищу не открывается.
func NewETLRunner(etlConfig config.ETLConfig, logger *utils.ETLLogger, dryRun bool) (*ETLRunner, error) {
	logger.Info("Инициализация ETL Runner")

	sector, organization, err := config.LoadCategories(etlConfig.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки категорий: %w", err)
	}

	runner := &ETLRunner{
		config:       etlConfig,
		logger:       logger,
		sector:       sector,
		organization: organization,
		out:          os.Stdout,
	}

	if dryRun {
		return runner, nil
	}

	conn, err := config.ConnectDatabase(etlConfig.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к хранилищу: %w", err)
	}

	if err := load.EnsureSchema(conn.DB, conn.Dialect); err != nil {
		config.CloseDatabase(conn)
		return nil, fmt.Errorf("ошибка при создании схемы хранилища: %w", err)
	}

	runner.dbConn = conn
	runner.etlLogRepo = models.NewSQLETLLogRepository(conn.DB, string(conn.Dialect))
	return runner, nil
}

// Close закрывает соединение с хранилищем и файл лога
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	if r.dbConn != nil {
		if err := config.CloseDatabase(r.dbConn); err != nil {
			r.logger.Error("%v", err)
		}
	}
	if err := r.logger.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// ExecuteETL выполняет полный ETL процесс.
// Любая ошибка фатальна для запуска и записывается в журнал.
func (r *ETLRunner) ExecuteETL(opts RunOptions) (*RunResult, error) {
	runID := uuid.NewString()
	logger := r.logger.With(zap.String("run_id", runID))
	startTime := time.Now()
	logger.LogETLStart()

	if opts.DryRun || r.etlLogRepo == nil {
		return r.execute(logger, runID, startTime, opts)
	}

	logID, err := r.etlLogRepo.CreateLogEntry(runID, startTime)
	if err != nil {
		logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return nil, fmt.Errorf("ошибка при создании записи в журнале ETL: %w", err)
	}

	result, err := r.execute(logger, runID, startTime, opts)
	if err != nil {
		if logErr := r.etlLogRepo.UpdateLogEntryFailure(logID, time.Now(), err.Error()); logErr != nil {
			logger.Error("Ошибка при обновлении записи в журнале ETL: %v", logErr)
		}
		return nil, err
	}

	if err := r.etlLogRepo.UpdateLogEntrySuccess(logID, time.Now(), result.Data.Metadata); err != nil {
		logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
		return nil, fmt.Errorf("ошибка при обновлении записи в журнале ETL: %w", err)
	}

	return result, nil
}

func (r *ETLRunner) execute(logger *utils.ETLLogger, runID string, startTime time.Time, opts RunOptions) (*RunResult, error) {
	// 1. Фаза извлечения данных (Extract)
	extractedData, err := extractors.NewExtractor(logger).Extract(r.config.Inputs.FundedPath, r.config.Inputs.DefundedPath)
	if err != nil {
		logger.Error("Ошибка в фазе Extract: %v", err)
		return nil, fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// 2. Фаза трансформации данных (Transform)
	transformedData, err := transform.NewTransformer(logger, r.sector, r.organization).Transform(extractedData)
	if err != nil {
		logger.Error("Ошибка в фазе Transform: %v", err)
		return nil, fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	// 3. Фаза загрузки данных (Load)
	if opts.DryRun || r.dbConn == nil {
		if err := report.WriteRun(r.out, runID, transformedData); err != nil {
			return nil, fmt.Errorf("ошибка при выводе сводок: %w", err)
		}
	} else if err := load.NewLoadManager(r.dbConn.DB, logger).Load(runID, transformedData); err != nil {
		logger.Error("Ошибка в фазе Load: %v", err)
		return nil, fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	// 4. Выгрузка в файл только после успешной загрузки
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = r.config.ExportPath
	}
	if exportPath != "" {
		if err := processor.ExportContracts(exportPath, transformedData); err != nil {
			logger.Error("Ошибка при выгрузке в файл: %v", err)
			return nil, fmt.Errorf("ошибка при выгрузке в файл: %w", err)
		}
		logger.Info("Объединенная таблица выгружена в %s", exportPath)
	}

	logger.LogETLComplete(startTime, len(transformedData.Contracts),
		len(transformedData.Sectors), len(transformedData.Organizations))

	return &RunResult{RunID: runID, Data: transformedData}, nil
}

// StartScheduler запускает планировщик для регулярного выполнения ETL
// и блокируется до отмены контекста
func (r *ETLRunner) StartScheduler(ctx context.Context) error {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).SingletonMode().Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if _, err := r.ExecuteETL(RunOptions{}); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	scheduler.StartAsync()

	<-ctx.Done()

	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
	return nil
}

type cliFlags struct {
	configPath     string
	categoriesPath string
	verbose        bool
	dryRun         bool
	exportPath     string
}

// loadRunner читает конфигурацию и создает ETLRunner
func loadRunner(flags *cliFlags, dryRun bool) (*ETLRunner, error) {
	etlConfig, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.categoriesPath != "" {
		etlConfig.CategoriesFile = flags.categoriesPath
	}
	if flags.verbose {
		etlConfig.EnableDetailedLogging = true
	}

	logger := utils.OpenETLLogger(etlConfig.EnableDetailedLogging, etlConfig.LogDir)
	runner, err := NewETLRunner(etlConfig, logger, dryRun)
	if err != nil {
		logger.Close()
		return nil, err
	}
	return runner, nil
}

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "etl",
		Short:         "Очистка и сводка выгрузок контрактов USAID (funded / defunded)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "etl.yaml", "файл конфигурации")
	root.PersistentFlags().StringVar(&flags.categoriesPath, "categories", "", "файл с наборами категорий")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "подробное логирование")

	once := &cobra.Command{
		Use:   "once",
		Short: "Выполнить ETL один раз",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := loadRunner(flags, flags.dryRun)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.out = cmd.OutOrStdout()

			_, err = runner.ExecuteETL(RunOptions{DryRun: flags.dryRun, ExportPath: flags.exportPath})
			return err
		},
	}
	once.Flags().BoolVar(&flags.dryRun, "dry-run", false, "не подключаться к хранилищу, только напечатать сводки")
	once.Flags().StringVar(&flags.exportPath, "export", "", "выгрузить объединенную таблицу в файл (.csv или .xlsx)")

	scheduled := &cobra.Command{
		Use:   "scheduled",
		Short: "Выполнять ETL по расписанию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner, err := loadRunner(flags, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			return runner.StartScheduler(ctx)
		},
	}

	root.AddCommand(once, scheduled)
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}
