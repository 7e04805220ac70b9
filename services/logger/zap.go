package logsvc

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/user"
)

type ZapLogger struct {
	base *zap.Logger
}

var _ core.Logger = (*ZapLogger)(nil)

// NewZapLogger builds a logger from conf.Log: a coloured development encoder for "console",
// the production JSON encoder otherwise. Output goes to stderr so it never mixes with menus.
func NewZapLogger(conf *core.Config) (*ZapLogger, error) {
	var zapCfg zap.Config
	if conf.Log.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.Development = false // no panics on DPanic
	}

	level, err := zapcore.ParseLevel(conf.Log.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing log level %q", conf.Log.Level)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.InitialFields = map[string]interface{}{"env": conf.Env}

	base, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return &ZapLogger{base: base}, nil
}

// New wraps an existing zap logger.
func New(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base.WithOptions(zap.AddCallerSkip(1))}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{base: zap.NewNop()}
}

// With returns a child logger that adds args to every entry.
func (l *ZapLogger) With(args ...interface{}) *ZapLogger {
	return &ZapLogger{base: l.base.With(l.prepare(args)...)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

// expected fmt: key, value pairs | error | user.User | zap.Field
func (l *ZapLogger) prepare(args []interface{}) []zap.Field {
	var usrSet bool
	fields := make([]zap.Field, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case user.User:
			// only set one User
			if !usrSet {
				fields = append(fields, zap.String("user", arg.Username), zap.Stringer("role", arg.Role))
				usrSet = true
			}
		case error:
			fields = append(fields, zap.Error(arg))
		case zap.Field:
			fields = append(fields, arg)
		case string:
			if i+1 < len(args) {
				fields = append(fields, zap.Any(arg, args[i+1]))
				i++
			} else {
				fields = append(fields, zap.String("detail", arg))
			}
		default:
			fields = append(fields, zap.Any(fmt.Sprintf("arg%d", i), arg))
		}
	}
	return fields
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.base.Debug(msg, l.prepare(args)...)
}

func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.base.Info(msg, l.prepare(args)...)
}

func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.base.Warn(msg, l.prepare(args)...)
}

func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.base.Error(msg, l.prepare(args)...)
}

func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.base.Fatal(msg, l.prepare(args)...)
}
