// Package logging configures the process-wide logrus logger from config.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/primer/internal/config"
)

// Configure applies level and format to the standard logrus logger and
// points it at out.
func Configure(cfg config.LogConfig, out io.Writer) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(out)

	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return nil
}
