// database/db.go
package database

import (
	"database/sql"

	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// Store - чтение результатов запусков ETL для сервера отчетов
type Store struct {
	db   *sql.DB
	runs *models.SQLETLLogRepository
}

// NewStore создает Store поверх открытого соединения с хранилищем
func NewStore(db *sql.DB, dialect string) *Store {
	return &Store{
		db:   db,
		runs: models.NewSQLETLLogRepository(db, dialect),
	}
}
