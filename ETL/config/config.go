package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Пути к исходным выгрузкам
	Inputs InputsConfig `yaml:"inputs"`

	// Хранилище результатов (MySQL или SQLite)
	Warehouse DatabaseConfig `yaml:"warehouse"`

	// Файл с наборами категорий; пустая строка - встроенные наборы
	CategoriesFile string `yaml:"categories_file"`

	// Интервал запуска ETL в режиме scheduled
	RunInterval time.Duration `yaml:"run_interval"`

	// Куда дополнительно выгрузить объединенную таблицу в CSV (необязательно)
	ExportPath string `yaml:"export_path"`

	// Каталог для файла лога
	LogDir string `yaml:"log_dir"`

	// Параметры сервера отчетов
	Server ServerConfig `yaml:"server"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `yaml:"enable_detailed_logging"`
}

// InputsConfig - пути к двум CSV-выгрузкам
type InputsConfig struct {
	FundedPath   string `yaml:"funded_path"`
	DefundedPath string `yaml:"defunded_path"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql или sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Path     string `yaml:"path"` // файл базы для sqlite
}

// ServerConfig - настройки сервера отчетов
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Значения конфигурации по умолчанию
var (
	DefaultWarehouseConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "usaid_awards",
	}

	DefaultETLConfig = ETLConfig{
		Inputs: InputsConfig{
			FundedPath:   "data/usaid_funded.csv",
			DefundedPath: "data/usaid_defunded.csv",
		},
		Warehouse:   DefaultWarehouseConfig,
		RunInterval: 24 * time.Hour,
		LogDir:      ".",
		Server: ServerConfig{
			Addr:         ":8080",
			PollInterval: 10 * time.Second,
		},
		EnableDetailedLogging: true,
	}
)

// Load читает конфигурацию из YAML-файла поверх значений по умолчанию.
// Если путь пустой или файла нет, используются значения по умолчанию.
func Load(path string) (ETLConfig, error) {
	config := DefaultETLConfig

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// работаем на значениях по умолчанию
		case err != nil:
			return ETLConfig{}, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return ETLConfig{}, fmt.Errorf("ошибка разбора файла конфигурации %s: %w", path, err)
			}
		}
	}

	config.applyEnvOverrides()

	if err := config.Validate(); err != nil {
		return ETLConfig{}, err
	}
	return config, nil
}

// Save записывает конфигурацию в YAML-файл
func (c ETLConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("ошибка сериализации конфигурации: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла конфигурации %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides переопределяет значения из переменных окружения
func (c *ETLConfig) applyEnvOverrides() {
	if v := os.Getenv("ETL_FUNDED_PATH"); v != "" {
		c.Inputs.FundedPath = v
	}
	if v := os.Getenv("ETL_DEFUNDED_PATH"); v != "" {
		c.Inputs.DefundedPath = v
	}
	if v := os.Getenv("ETL_CATEGORIES_FILE"); v != "" {
		c.CategoriesFile = v
	}
	if v := os.Getenv("ETL_DB_DRIVER"); v != "" {
		c.Warehouse.Driver = v
	}
	if v := os.Getenv("ETL_DB_HOST"); v != "" {
		c.Warehouse.Host = v
	}
	if v := os.Getenv("ETL_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Warehouse.Port = port
		}
	}
	if v := os.Getenv("ETL_DB_USER"); v != "" {
		c.Warehouse.User = v
	}
	if v := os.Getenv("ETL_DB_PASSWORD"); v != "" {
		c.Warehouse.Password = v
	}
	if v := os.Getenv("ETL_DB_NAME"); v != "" {
		c.Warehouse.DBName = v
	}
	if v := os.Getenv("ETL_DB_PATH"); v != "" {
		c.Warehouse.Path = v
	}
	if v := os.Getenv("ETL_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate проверяет конфигурацию
func (c ETLConfig) Validate() error {
	if c.Inputs.FundedPath == "" {
		return fmt.Errorf("не указан путь к выгрузке funded (inputs.funded_path)")
	}
	if c.Inputs.DefundedPath == "" {
		return fmt.Errorf("не указан путь к выгрузке defunded (inputs.defunded_path)")
	}
	if c.RunInterval <= 0 {
		return fmt.Errorf("интервал запуска должен быть положительным, получено %v", c.RunInterval)
	}
	if c.Server.PollInterval <= 0 {
		return fmt.Errorf("интервал опроса журнала должен быть положительным, получено %v", c.Server.PollInterval)
	}
	if err := c.Warehouse.Validate(); err != nil {
		return err
	}
	return nil
}
