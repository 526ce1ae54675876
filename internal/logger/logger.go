// Package logger configures the process-wide logrus entry. JSON output in
// production, plain text otherwise.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	base *logrus.Logger
	Log  *logrus.Entry
)

// init keeps Log usable from tests, where main never runs.
func init() {
	Init("api")
}

func Init(service string) {
	base = logrus.New()
	base.SetOutput(os.Stderr)
	if os.Getenv("BACKLOG_ENV") == "prod" {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
	Log = base.WithFields(logrus.Fields{"service": service})
}
