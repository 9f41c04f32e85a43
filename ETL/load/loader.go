package load

import (
	"database/sql"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// Loader интерфейс для загрузки результатов одного запуска.
// Все методы работают внутри общей транзакции.
type Loader interface {
	// LoadContracts загружает объединенную таблицу
	LoadContracts(tx *sql.Tx, runID string, records []models.ContractRecord) error

	// LoadSummaries загружает строки одной сводки
	LoadSummaries(tx *sql.Tx, runID string, summaries []models.CategorySummary) error

	// LoadSnapshot сохраняет сжатую CSV-выгрузку таблицы
	LoadSnapshot(tx *sql.Tx, runID string, records []models.ContractRecord) error
}

// WarehouseLoader реализация Loader для хранилища MySQL/SQLite
type WarehouseLoader struct {
	logger *utils.ETLLogger

	// Загрузчики для отдельных типов данных
	contractLoader *ContractLoader
	summaryLoader  *SummaryLoader
	snapshotLoader *SnapshotLoader
}

// NewWarehouseLoader создает новый экземпляр WarehouseLoader
func NewWarehouseLoader(logger *utils.ETLLogger) *WarehouseLoader {
	return &WarehouseLoader{
		logger:         logger,
		contractLoader: NewContractLoader(logger),
		summaryLoader:  NewSummaryLoader(logger),
		snapshotLoader: NewSnapshotLoader(logger),
	}
}

// LoadContracts загружает объединенную таблицу
func (l *WarehouseLoader) LoadContracts(tx *sql.Tx, runID string, records []models.ContractRecord) error {
	return l.contractLoader.Load(tx, runID, records)
}

// LoadSummaries загружает строки одной сводки
func (l *WarehouseLoader) LoadSummaries(tx *sql.Tx, runID string, summaries []models.CategorySummary) error {
	return l.summaryLoader.Load(tx, runID, summaries)
}

// LoadSnapshot сохраняет сжатую CSV-выгрузку таблицы
func (l *WarehouseLoader) LoadSnapshot(tx *sql.Tx, runID string, records []models.ContractRecord) error {
	return l.snapshotLoader.Load(tx, runID, records)
}
