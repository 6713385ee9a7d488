package converter

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used by the converter. *logrus.Logger and
// *logrus.Entry both implement it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NewLogger creates a logrus logger writing to out.
//
// PARAMETERS:
//   - level: A logrus level name ("debug", "info", "warn", "error").
//   - format: "text" or "json".
//   - out: The destination, usually standard error.
func NewLogger(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)

	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return logger, nil
}

func discardLogger() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
