package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/logging"
	"github.com/macalbert/cdk-intro-workshop/pkg/lambda"
)

func main() {
	// CloudWatch ingests JSON until the configured level is known
	_ = logging.Setup(config.LogConfig{Level: "info", Format: "json"})

	manager := lambda.NewConnectionManager(config.GetLambdaConfig)

	// Build during the init phase so warm invocations skip it. A failure
	// here is retried on the first invocation and reported to the caller.
	if err := manager.Initialize(); err != nil {
		logrus.WithError(err).Error("Failed to initialize lambda application")
	}

	logging.WithService(logrus.StandardLogger()).Info("Starting lambda runtime")
	awslambda.Start(manager.Handle)
}
