package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel парсит уровень из конфига ("debug", "info", "warn", "error")
// Неизвестное значение трактуется как info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Параметры ротации файла логов
const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 14
)

var levelTags = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var levelColors = map[Level]func(a ...interface{}) string{
	LevelDebug: color.New(color.FgHiBlack).SprintFunc(),
	LevelInfo:  color.New(color.FgCyan).SprintFunc(),
	LevelWarn:  color.New(color.FgYellow).SprintFunc(),
	LevelError: color.New(color.FgRed, color.Bold).SprintFunc(),
}

// Logger логгер с printf-интерфейсом
// Пишет в stdout (уровни подсвечены цветом) и в файл с ротацией
type Logger struct {
	mu      sync.Mutex
	level   Level
	console *log.Logger
	file    *log.Logger
	closer  io.Closer
}

// New создает логгер
// Если filePath пустой, логи пишутся только в stdout
func New(filePath string, level string) (*Logger, error) {
	l := &Logger{
		level:   ParseLevel(level),
		console: log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds),
	}

	if filePath != "" {
		rotating := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		l.file = log.New(rotating, "", log.LstdFlags|log.Lmicroseconds)
		l.closer = rotating
	}

	return l, nil
}

// NewWriter создает логгер поверх произвольного writer (без цвета и файла)
func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{
		level:   ParseLevel(level),
		console: log.New(w, "", 0),
	}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.write(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.write(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.write(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.write(LevelError, format, v...) }

// Fatal пишет ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
	_ = l.Close()
	os.Exit(1)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	tag := levelTags[level]

	l.mu.Lock()
	defer l.mu.Unlock()

	l.console.Printf("[%s] %s", levelColors[level](tag), msg)
	if l.file != nil {
		l.file.Printf("[%s] %s", tag, msg)
	}
}
