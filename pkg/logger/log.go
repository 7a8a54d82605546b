package logger

import "go.uber.org/zap"

// NewLogger создает "двойной" логгер: пишет и в консоль, и в файл.
func NewLogger() *zap.Logger {
	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout", "./logs/app.log"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}

// NewNamedLogger возвращает дочерний логгер с именем подсистемы (auth, loans и т.д.).
func NewNamedLogger(base *zap.Logger, name string) *zap.Logger {
	return base.Named(name)
}
