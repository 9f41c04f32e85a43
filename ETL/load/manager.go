package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// LoadManager отвечает за управление процессом загрузки данных в хранилище
type LoadManager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader Loader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:     db,
		logger: logger,
		loader: NewWarehouseLoader(logger),
	}
}

// Load выполняет фазу загрузки одной транзакцией: либо сохраняется весь
// запуск, либо ничего
func (m *LoadManager) Load(runID string, transformedData *models.TransformedData) (err error) {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				m.logger.Error("Ошибка при откате транзакции: %v", rbErr)
			}
		}
	}()

	// 1. Объединенная таблица
	m.logger.Info("Загрузка объединенной таблицы...")
	if err = m.loader.LoadContracts(tx, runID, transformedData.Contracts); err != nil {
		m.logger.Error("Ошибка при загрузке таблицы контрактов: %v", err)
		return fmt.Errorf("ошибка при загрузке таблицы контрактов: %w", err)
	}

	// 2. Сводки
	m.logger.Info("Загрузка сводок...")
	for _, summaries := range [][]models.CategorySummary{transformedData.Sectors, transformedData.Organizations} {
		if err = m.loader.LoadSummaries(tx, runID, summaries); err != nil {
			m.logger.Error("Ошибка при загрузке сводки: %v", err)
			return fmt.Errorf("ошибка при загрузке сводки: %w", err)
		}
	}

	// 3. Снимок таблицы
	m.logger.Info("Сохранение снимка таблицы...")
	if err = m.loader.LoadSnapshot(tx, runID, transformedData.Contracts); err != nil {
		m.logger.Error("Ошибка при сохранении снимка: %v", err)
		return fmt.Errorf("ошибка при сохранении снимка: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	m.logger.Info("Фаза Load завершена. Длительность: %v", duration)

	return nil
}
