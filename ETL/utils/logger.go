package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ETLLogger представляет логгер для ETL-процесса
type ETLLogger struct {
	logger    *zap.Logger
	sugar     *zap.SugaredLogger
	isVerbose bool

	// Файл лога; есть только у логгера, который его открыл
	file *os.File
}

// OpenETLLogger создает логгер с файлом в каталоге dir.
// Если файл открыть не удалось, пишем только в консоль.
func OpenETLLogger(verbose bool, dir string) *ETLLogger {
	logger, err := NewETLLoggerWithDir(verbose, dir)
	if err != nil {
		logger = NewETLLoggerFromZap(newConsoleLogger(verbose), verbose)
		logger.Warn("Не удалось открыть файл лога, пишем только в консоль: %v", err)
	}
	return logger
}

// NewETLLoggerWithDir создает логгер с файлом etl_log_YYYY-MM-DD.log в каталоге dir
func NewETLLoggerWithDir(verbose bool, dir string) (*ETLLogger, error) {
	logFileName := fmt.Sprintf("etl_log_%s.log", time.Now().Format("2006-01-02"))

	file, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть или создать файл лога: %w", err)
	}

	level := levelFor(verbose)

	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, zapcore.AddSync(file), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.Lock(os.Stdout), level),
	)

	logger := NewETLLoggerFromZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), verbose)
	logger.file = file
	return logger, nil
}

// NewETLLoggerFromZap оборачивает готовый zap-логгер
func NewETLLoggerFromZap(logger *zap.Logger, verbose bool) *ETLLogger {
	return &ETLLogger{
		logger:    logger,
		sugar:     logger.Sugar(),
		isVerbose: verbose,
	}
}

// NewNopLogger возвращает логгер, который ничего не пишет
func NewNopLogger() *ETLLogger {
	return NewETLLoggerFromZap(zap.NewNop(), false)
}

func newConsoleLogger(verbose bool) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(levelFor(verbose))
	config.DisableStacktrace = true
	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func levelFor(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// Zap возвращает нижележащий zap-логгер для структурированных полей
func (l *ETLLogger) Zap() *zap.Logger {
	return l.logger.WithOptions(zap.AddCallerSkip(-1))
}

// With возвращает логгер с дополнительными полями (например, run_uuid)
func (l *ETLLogger) With(fields ...zap.Field) *ETLLogger {
	return NewETLLoggerFromZap(l.logger.With(fields...), l.isVerbose)
}

// Close сбрасывает буферы и закрывает файл лога.
// Логгеры, полученные через With, файл не закрывают.
func (l *ETLLogger) Close() error {
	_ = l.logger.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("ошибка закрытия файла лога: %w", err)
	}
	return nil
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warn логирует предупреждение
func (l *ETLLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	l.sugar.Debugf(format, v...)
}

// LogETLStart логирует начало ETL-процесса
func (l *ETLLogger) LogETLStart() {
	l.Info("Начало выполнения ETL-процесса")
}

// LogETLComplete логирует завершение ETL-процесса
func (l *ETLLogger) LogETLComplete(startTime time.Time, mergedRecords, sectorRows, organizationRows int) {
	l.Info("ETL-процесс завершён. Длительность: %v", time.Since(startTime))
	l.Info("Итог: %d записей в объединенной таблице, %d строк по секторам, %d строк по организациям",
		mergedRecords, sectorRows, organizationRows)
}

// LogExtractStart логирует начало фазы извлечения данных
func (l *ETLLogger) LogExtractStart() {
	l.Info("Начало фазы Extract (Чтение исходных таблиц)")
}

// LogExtractComplete логирует завершение фазы извлечения данных
func (l *ETLLogger) LogExtractComplete(funded, defunded int, duration time.Duration) {
	l.Info("Фаза Extract завершена. Длительность: %v", duration)
	l.Info("Прочитано: %d записей funded, %d записей defund", funded, defunded)
}
