package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/usaid_awards/ETL/config"
	"github.com/LilVoxy/usaid_awards/ETL/models"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS contract_records (
		run_id CHAR(36) NOT NULL,
		position INT NOT NULL,
		award_id VARCHAR(255) NOT NULL,
		contract_id VARCHAR(255) NOT NULL,
		vendor TEXT NOT NULL,
		contract TEXT NOT NULL,
		estimated_cost DOUBLE NULL,
		obligated_amount DOUBLE NULL,
		start_date DATE NULL,
		end_date DATE NULL,
		issuing_office VARCHAR(255) NOT NULL,
		record_type ENUM('funded', 'defund') NOT NULL,
		value DOUBLE NULL,
		loss DOUBLE NULL,
		PRIMARY KEY (run_id, position),
		INDEX idx_contract_records_type (run_id, record_type)
	)`,
	`CREATE TABLE IF NOT EXISTS category_summaries (
		run_id CHAR(36) NOT NULL,
		rollup VARCHAR(64) NOT NULL,
		position INT NOT NULL,
		category VARCHAR(255) NOT NULL,
		total_value DOUBLE NOT NULL,
		total_loss DOUBLE NOT NULL,
		total_contract DOUBLE NOT NULL,
		matched_records INT NOT NULL,
		PRIMARY KEY (run_id, rollup, position)
	)`,
	`CREATE TABLE IF NOT EXISTS contract_snapshots (
		run_id CHAR(36) NOT NULL PRIMARY KEY,
		format VARCHAR(16) NOT NULL,
		raw_size INT NOT NULL,
		data LONGBLOB NOT NULL,
		created_at DATETIME(6) NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS contract_records (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		award_id TEXT NOT NULL,
		contract_id TEXT NOT NULL,
		vendor TEXT NOT NULL,
		contract TEXT NOT NULL,
		estimated_cost REAL NULL,
		obligated_amount REAL NULL,
		start_date DATE NULL,
		end_date DATE NULL,
		issuing_office TEXT NOT NULL,
		record_type TEXT NOT NULL CHECK (record_type IN ('funded', 'defund')),
		value REAL NULL,
		loss REAL NULL,
		PRIMARY KEY (run_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contract_records_type ON contract_records (run_id, record_type)`,
	`CREATE TABLE IF NOT EXISTS category_summaries (
		run_id TEXT NOT NULL,
		rollup TEXT NOT NULL,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		total_value REAL NOT NULL,
		total_loss REAL NOT NULL,
		total_contract REAL NOT NULL,
		matched_records INTEGER NOT NULL,
		PRIMARY KEY (run_id, rollup, position)
	)`,
	`CREATE TABLE IF NOT EXISTS contract_snapshots (
		run_id TEXT NOT NULL PRIMARY KEY,
		format TEXT NOT NULL,
		raw_size INTEGER NOT NULL,
		data BLOB NOT NULL,
		created_at DATETIME NOT NULL
	)`,
}

// EnsureSchema создает таблицы хранилища и журнала запусков, если их нет
func EnsureSchema(db *sql.DB, dialect config.Dialect) error {
	statements := mysqlSchema
	if dialect == config.DialectSQLite {
		statements = sqliteSchema
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ошибка при создании схемы хранилища: %w", err)
		}
	}

	if err := models.NewSQLETLLogRepository(db, string(dialect)).CreateETLLogTable(); err != nil {
		return err
	}
	return nil
}
