package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
)

// ServiceName is attached to every log entry.
const ServiceName = "fastapi-workshop"

// Setup configures the standard logrus logger for the service.
func Setup(cfg config.LogConfig) error {
	return configure(logrus.StandardLogger(), os.Stdout, cfg)
}

// New returns a dedicated logger configured like the standard one.
func New(out io.Writer, cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	if err := configure(logger, out, cfg); err != nil {
		return nil, err
	}
	return logger, nil
}

func configure(logger *logrus.Logger, out io.Writer, cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	logger.SetOutput(out)
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

// WithService returns an entry tagged with the service name and deployment mode.
// Under Lambda the function name and region are attached as well.
func WithService(logger *logrus.Logger) *logrus.Entry {
	return logger.WithFields(serviceFields(config.GetServerlessConfig()))
}

func serviceFields(sc *config.ServerlessConfig) logrus.Fields {
	fields := logrus.Fields{
		"service":         ServiceName,
		"deployment_mode": "server",
	}
	if sc.IsLambda {
		fields["deployment_mode"] = "serverless"
		fields["function_name"] = sc.FunctionName
		fields["region"] = sc.Region
	}
	return fields
}
