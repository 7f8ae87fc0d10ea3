package logsvc

import (
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/trezcool/aimforms/core"
)

// RollbarLogger reports to Rollbar and mirrors every entry to a local zap logger.
type RollbarLogger struct {
	zl *zap.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger returns a logger named `name`. Local entries go to stdout,
// or to the rotated conf.LogFile when set.
func NewRollbarLogger(name string, conf *core.Config) *RollbarLogger {
	host, _ := os.Hostname()
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.Debug)

	return &RollbarLogger{zl: newZap(conf).Named(name)}
}

// NewLocalLogger returns a logger that never reports to Rollbar.
func NewLocalLogger(zl *zap.Logger) *RollbarLogger {
	rollbar.SetEnabled(false)
	return &RollbarLogger{zl: zl}
}

func newZap(conf *core.Config) *zap.Logger {
	level := zapcore.InfoLevel
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)
	if conf.Debug {
		level = zapcore.DebugLevel
		encCfg = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	if conf.LogFile != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	return zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller(), zap.AddCallerSkip(2))
}

// Close flushes both sinks.
func (l RollbarLogger) Close() {
	rollbar.Close()
	_ = l.zl.Sync()
}

// expected fmt: msg | error, map[string]interface{}
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, []zap.Field) {
	rbArgs := make([]interface{}, 0, len(args)+1)
	rbArgs = append(rbArgs, msg)
	fields := make([]zap.Field, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			fields = append(fields, zap.Error(a))
		case map[string]interface{}:
			for k, v := range a {
				fields = append(fields, zap.Any(k, v))
			}
		default:
			fields = append(fields, zap.Any("arg", a))
			continue
		}
		rbArgs = append(rbArgs, arg)
	}
	return rbArgs, fields
}

func (l RollbarLogger) log(lvl zapcore.Level, msg string, args []interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	switch lvl {
	case zapcore.DebugLevel:
		rollbar.Debug(rbArgs...)
	case zapcore.InfoLevel:
		rollbar.Info(rbArgs...)
	case zapcore.WarnLevel:
		rollbar.Warning(rbArgs...)
	case zapcore.ErrorLevel:
		rollbar.Error(rbArgs...)
	default:
		rollbar.Critical(rbArgs...)
		rollbar.Close() // zap exits the process on fatal entries
	}
	if ce := l.zl.Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(zapcore.DebugLevel, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(zapcore.InfoLevel, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(zapcore.WarnLevel, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(zapcore.ErrorLevel, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(zapcore.FatalLevel, msg, args)
	os.Exit(1)
}
