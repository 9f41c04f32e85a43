package config

import (
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect - диалект SQL хранилища
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// DBConnection - подключение к хранилищу вместе с его диалектом
type DBConnection struct {
	DB      *sql.DB
	Dialect Dialect
}

// Validate проверяет настройки подключения
func (c DatabaseConfig) Validate() error {
	switch Dialect(c.Driver) {
	case DialectMySQL:
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("для mysql нужны host и dbname")
		}
	case DialectSQLite:
		if c.Path == "" {
			return fmt.Errorf("для sqlite нужен path")
		}
	default:
		return fmt.Errorf("неизвестный драйвер базы данных: %q", c.Driver)
	}
	return nil
}

// DSN формирует строку подключения для драйвера
func (c DatabaseConfig) DSN() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	if Dialect(c.Driver) == DialectSQLite {
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
	}

	mysqlConfig := mysql.NewConfig()
	mysqlConfig.User = c.User
	mysqlConfig.Passwd = c.Password
	mysqlConfig.Net = "tcp"
	mysqlConfig.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mysqlConfig.DBName = c.DBName
	mysqlConfig.ParseTime = true
	mysqlConfig.Loc = time.UTC
	mysqlConfig.Params = map[string]string{"charset": "utf8mb4"}

	return mysqlConfig.FormatDSN(), nil
}

// ConnectDatabase устанавливает подключение к хранилищу
func ConnectDatabase(config DatabaseConfig) (*DBConnection, error) {
	dsn, err := config.DSN()
	if err != nil {
		return nil, fmt.Errorf("некорректные настройки базы данных: %w", err)
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	// Настройка параметров подключения
	if Dialect(config.Driver) == DialectSQLite {
		// SQLite не поддерживает параллельную запись
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// Проверка подключения
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось установить соединение с базой данных: %w", err)
	}

	return &DBConnection{DB: db, Dialect: Dialect(config.Driver)}, nil
}

// CloseDatabase закрывает подключение к хранилищу
func CloseDatabase(connection *DBConnection) error {
	if connection == nil || connection.DB == nil {
		return nil
	}
	if err := connection.DB.Close(); err != nil {
		return fmt.Errorf("ошибка при закрытии соединения с базой данных: %w", err)
	}
	return nil
}
