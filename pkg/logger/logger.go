package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env       string    // development -> consola legible; production -> JSON
	Level     string    // trace, debug, info, warn, error (consola)
	FileLevel string    // nivel mínimo del archivo; vacío = warn
	Dir       string    // directorio del archivo de log; vacío = sin archivo
	File      string    // nombre del archivo; vacío = app.log
	Out       io.Writer // salida de consola; nil = os.Stdout
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New crea un logger estructurado. En development usa salida legible; en production JSON.
// Si Dir está definido también escribe en Dir/File con su propio nivel mínimo. Si el archivo
// no puede abrirse se sigue solo con la consola y se deja constancia en ella.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Out != nil {
		out = cfg.Out
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	consoleLevel := parseLevel(cfg.Level)
	writers := []io.Writer{levelWriter{w: out, min: consoleLevel}}
	minLevel := consoleLevel

	var file *os.File
	var fileErr error
	if cfg.Dir != "" {
		file, fileErr = openLogFile(cfg.Dir, cfg.File)
		if fileErr == nil {
			fileLevel := zerolog.WarnLevel
			if cfg.FileLevel != "" {
				fileLevel = parseLevel(cfg.FileLevel)
			}
			writers = append(writers, levelWriter{w: file, min: fileLevel})
			minLevel = min(minLevel, fileLevel)
		}
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(minLevel).With().Timestamp().Logger()

	// Redirigir el logger global de zerolog para librerías que lo usen
	log.Logger = zl

	l := &Logger{zl: zl, file: file}
	if fileErr != nil {
		l.Warn().Err(fileErr).Msg("no se pudo abrir el archivo de log, se continúa solo con consola")
	}
	return l
}

// Nop devuelve un logger que descarta todo (tests).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Close cierra el archivo de log, si hay uno.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func openLogFile(dir, name string) (*os.File, error) {
	if name == "" {
		name = "app.log"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de logs: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// levelWriter descarta los eventos por debajo de min, para que consola y archivo tengan niveles propios.
type levelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (lw levelWriter) Write(p []byte) (int, error) {
	return lw.w.Write(p)
}

func (lw levelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < lw.min {
		return len(p), nil
	}
	return lw.w.Write(p)
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace, Debug, Info, Warn, Error delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog devuelve el logger interno por si se necesita la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
