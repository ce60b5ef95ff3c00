package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger printf-style логгер поверх zerolog.
// Пишет в stdout и, если указан файл, дублирует записи в файл.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// Option дополнительная настройка логгера
type Option func(*options)

type options struct {
	console bool
	output  io.Writer
	fields  map[string]string
}

// WithConsoleFormat включает человекочитаемый вывод вместо JSON
func WithConsoleFormat() Option {
	return func(o *options) { o.console = true }
}

// WithOutput подменяет stdout (используется в тестах)
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithField добавляет постоянное поле во все записи
func WithField(key, value string) Option {
	return func(o *options) {
		if o.fields == nil {
			o.fields = make(map[string]string)
		}
		o.fields[key] = value
	}
}

// New создает логгер. Пустой file означает вывод только в stdout.
// Неизвестный уровень трактуется как info.
func New(file string, level string, opts ...Option) (*Logger, error) {
	o := &options{output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := o.output
	if o.console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := &Logger{}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", file, err)
		}
		l.file = f
		out = zerolog.MultiLevelWriter(out, f)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	for k, v := range o.fields {
		ctx = ctx.Str(k, v)
	}
	l.zl = ctx.Logger()

	return l, nil
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет запись и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// With возвращает дочерний логгер с дополнительным полем (например, request_id)
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Zerolog открывает доступ к исходному логгеру
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
