package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.SugaredLogger = zap.NewNop().Sugar()

// Init sets up the global logger with the given level
func Init(level string) error {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	global = zapLogger.Sugar()
	return nil
}

func Info(msg string, keysAndValues ...interface{}) {
	global.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	global.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	global.Errorw(msg, keysAndValues...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	global.Debugw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	global.Fatalw(msg, keysAndValues...)
}

func Sync() {
	_ = global.Sync()
}
