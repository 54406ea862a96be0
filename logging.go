package triparticles

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// LogOptions configures NewDefaultLogger.
type LogOptions struct {
	Prefix string
	Debug  bool   // forces debug regardless of Level
	Level  string // debug, info, warn or error; empty means info
	Format string // "console" or "json"
	Output string // file path, "stdout" or "stderr"
}

type DefaultLogger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

func NewDefaultLogger(opts LogOptions) (*DefaultLogger, error) {
	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncoderConfig.ConsoleSeparator = "  "
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	if opts.Output != "" {
		cfg.OutputPaths = []string{opts.Output}
		// Colour escapes only make sense on a terminal.
		if opts.Format != "json" && opts.Output != "stdout" && opts.Output != "stderr" {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level.SetLevel(lvl)
	}
	if opts.Debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if opts.Prefix != "" {
		z = z.Named(opts.Prefix)
	}
	return &DefaultLogger{level: cfg.Level, sugar: z.Sugar()}, nil
}

// NewZapLogger wraps an existing zap logger. SetDebug only takes effect if
// level is the one the core was built with.
func NewZapLogger(z *zap.Logger, level zap.AtomicLevel) *DefaultLogger {
	return &DefaultLogger{level: level, sugar: z.Sugar()}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered entries.
func (l *DefaultLogger) Sync() error { return l.sugar.Sync() }

// LoggingModule installs a logger as a resource. Install it first so later
// modules pick it up through App.Logger.
type LoggingModule struct {
	Logger *DefaultLogger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	if m.Logger == nil {
		return
	}
	cmd.AddResources(m.Logger)
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
