// Package logger wraps zap construction for the service
// Package logger 封装服务的 zap 日志构建
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config logger configuration
// Config 日志配置
type Config struct {
	Level      string // debug / info / warn / error
	File       string // log file path, empty means console only // 日志文件路径，为空则仅输出到控制台
	Production bool   // JSON encoder + sampling when true // 为 true 时使用 JSON 编码器
	UseStderr  bool   // console logs go to stderr, stdio transports own stdout // stdio 传输占用 stdout 时控制台日志改走 stderr
}

// NewLogger builds a zap.Logger from Config
// NewLogger 根据配置构建 zap.Logger
func NewLogger(c Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	consoleTarget := zapcore.Lock(os.Stdout)
	if c.UseStderr {
		consoleTarget = zapcore.Lock(os.Stderr)
	}

	if c.Production {
		consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, consoleTarget, level))
	} else {
		devEncoderConfig := zap.NewDevelopmentEncoderConfig()
		devEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder := zapcore.NewConsoleEncoder(devEncoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, consoleTarget, level))
	}

	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0754); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), level))
	}

	lg := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return lg, nil
}
