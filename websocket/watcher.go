// websocket/watcher.go
package websocket

import (
	"fmt"
	"sync"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// RunSource - откуда наблюдатель узнает о запусках
type RunSource interface {
	LatestRun() (*models.ETLRunLog, error)
	GetSummaries(runID, rollup string) ([]models.CategorySummary, error)
}

// RunWatcher периодически проверяет журнал запусков и рассылает событие
// run_completed, когда появляется новый успешный запуск
type RunWatcher struct {
	source    RunSource
	hub       *Hub
	logger    *zap.Logger
	scheduler *gocron.Scheduler

	mu        sync.Mutex
	lastRunID string
}

// NewRunWatcher создает наблюдатель. Запуск, уже существующий на момент
// старта, событием не считается.
func NewRunWatcher(source RunSource, hub *Hub, logger *zap.Logger) *RunWatcher {
	return &RunWatcher{
		source: source,
		hub:    hub,
		logger: logger,
	}
}

// Prime запоминает текущий последний запуск без рассылки
func (w *RunWatcher) Prime() error {
	run, err := w.source.LatestRun()
	if err != nil {
		return fmt.Errorf("ошибка при чтении последнего запуска: %w", err)
	}
	if run != nil {
		w.mu.Lock()
		w.lastRunID = run.RunID
		w.mu.Unlock()
	}
	return nil
}

// Check проверяет журнал один раз. Возвращает true, если событие разослано.
func (w *RunWatcher) Check() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	run, err := w.source.LatestRun()
	if err != nil {
		return false, fmt.Errorf("ошибка при чтении последнего запуска: %w", err)
	}
	if run == nil || run.RunID == w.lastRunID {
		return false, nil
	}

	sectors, err := w.source.GetSummaries(run.RunID, models.RollupSector)
	if err != nil {
		return false, fmt.Errorf("ошибка при чтении отраслевой сводки: %w", err)
	}
	organizations, err := w.source.GetSummaries(run.RunID, models.RollupOrganization)
	if err != nil {
		return false, fmt.Errorf("ошибка при чтении сводки по организациям: %w", err)
	}

	event := Event{
		Type:          EventRunCompleted,
		Run:           run,
		Sectors:       sectors,
		Organizations: organizations,
		SentAt:        time.Now().UTC(),
	}
	if err := w.hub.Broadcast(event); err != nil {
		return false, err
	}

	w.lastRunID = run.RunID
	w.logger.Info("Разослано событие о новом запуске", zap.String("run_id", run.RunID), zap.Int("clients", w.hub.ClientCount()))
	return true, nil
}

// Start запускает периодическую проверку
func (w *RunWatcher) Start(interval time.Duration) error {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(interval).SingletonMode().Do(func() {
		if _, err := w.Check(); err != nil {
			w.logger.Error("Ошибка проверки журнала запусков", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	scheduler.StartAsync()
	w.scheduler = scheduler
	return nil
}

// Stop останавливает периодическую проверку
func (w *RunWatcher) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
