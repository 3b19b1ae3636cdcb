package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/MrSnakeDoc/boxkeep/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (cron mail, CI)
	Out   io.Writer // default os.Stdout
}

var (
	mu      sync.RWMutex
	zlog    *zap.SugaredLogger
	out     io.Writer = os.Stdout
	p       *printer.ColorPrinter
	jsonOut bool
	ready   atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configure(opts)
}

func configure(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}
	jsonOut = opts.JSON

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(writerAdapter{out}), parseLevel(opts.Level))
	zlog = zap.New(core).Sugar()

	if p == nil {
		p = printer.NewColorPrinter()
	}

	ready.Store(true)
}

// SetOutput replaces the logger writer, keeping the current level.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	configure(Options{Level: level, JSON: jsonOut, Out: w})
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
}

// Out returns the current output writer (for tables).
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, byInfo, "", msg, args...)
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, bySuccess, "✅ ", msg, args...)
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, byError, "❌ ", msg, args...)
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, byWarning, "⚠️ ", msg, args...)
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, byDebug, "🛠️ ", msg, args...)
}

// Heading writes a bold section title ("Daily:", "=== db").
func Heading(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, byHeading, "", msg, args...)
}

// Plain writes an uncolored line at info level (DELETE/UPDATE lines).
func Plain(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, nil, "", msg, args...)
}

// ---- Tables ----

func CreateTable(headers []string) *tablewriter.Table {
	mu.RLock()
	defer mu.RUnlock()
	t := tablewriter.NewTable(out)
	t.Header(headers)
	return t
}

// ---- internals ----

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(b []byte) (int, error) { return wa.w.Write(b) }

type colorPick func(*printer.ColorPrinter) func(string, ...interface{}) string

var (
	byInfo    colorPick = func(cp *printer.ColorPrinter) func(string, ...interface{}) string { return cp.Info }
	bySuccess colorPick = func(cp *printer.ColorPrinter) func(string, ...interface{}) string { return cp.Success }
	byError   colorPick = func(cp *printer.ColorPrinter) func(string, ...interface{}) string { return cp.Error }
	byWarning colorPick = func(cp *printer.ColorPrinter) func(string, ...interface{}) string { return cp.Warning }
	byDebug   colorPick = func(cp *printer.ColorPrinter) func(string, ...interface{}) string { return cp.Debug }
	byHeading colorPick = func(cp *printer.ColorPrinter) func(string, ...interface{}) string { return cp.Heading }
)

func emit(level zapcore.Level, pick colorPick, prefix, msg string, args ...interface{}) {
	if !ensureReady() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()

	var line string
	switch {
	case jsonOut || pick == nil:
		line = sprintf(msg, args...)
	default:
		line = pick(p)(prefix+msg, args...)
	}

	switch level {
	case zapcore.DebugLevel:
		zlog.Debug(line)
	case zapcore.WarnLevel:
		zlog.Warn(line)
	case zapcore.ErrorLevel:
		zlog.Error(line)
	default:
		zlog.Info(line)
	}
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func ensureReady() bool {
	return ready.Load() && p != nil && zlog != nil
}
