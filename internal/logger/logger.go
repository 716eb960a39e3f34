package logger

import (
	"os"

	"clothing-shop-api/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.Logger = zap.NewNop()

// Init builds the global JSON logger writing to stdout and a rotated file.
func Init(cfg *config.Log) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	fileSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	})
	syncer := zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), fileSyncer)

	Log = zap.New(zapcore.NewCore(encoder, syncer, level), zap.AddCaller())
	zap.ReplaceGlobals(Log)
	return nil
}

// Sync flushes buffered entries, for use at shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
