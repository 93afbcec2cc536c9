package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/config"
)

// New creates the application logger from the logging configuration.
// Output defaults to stdout when out is nil.
func New(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	}

	if out == nil {
		out = os.Stdout
	}
	logger.SetOutput(out)

	return logger, nil
}

// GooseLogger adapts a logrus logger to the goose migration logger.
type GooseLogger struct {
	Logger logrus.FieldLogger
}

func (g GooseLogger) Fatalf(format string, v ...any) {
	g.Logger.Fatalf(format, v...)
}

func (g GooseLogger) Printf(format string, v ...any) {
	g.Logger.WithField("component", "migrations").Infof(format, v...)
}
