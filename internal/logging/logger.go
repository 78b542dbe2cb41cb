package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

// Init configures the global logger. All output goes to stderr: in stdio mode
// stdout carries JSON-RPC frames and must stay clean.
func Init(verbose bool) {
	var config zap.Config

	if verbose {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		config.Encoding = "console"
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	config.DisableStacktrace = !verbose

	l, err := config.Build()
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(l)
	logger = l.Sugar()
}

// L returns the global sugared logger
func L() *zap.SugaredLogger {
	if logger == nil {
		Init(false)
	}
	return logger
}

// WithCall returns a logger carrying tool-call context
func WithCall(callID, tool string) *zap.SugaredLogger {
	return L().With(
		"call_id", callID,
		"tool", tool,
	)
}
