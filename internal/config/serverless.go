package config

import (
	"os"
	"sync"
)

// Values forced into the service configuration when running behind Lambda.
const (
	LambdaDeploymentType   = "lambda"
	LambdaImageType        = "custom"
	LambdaRuntimeInterface = "ric"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
}

var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     isRunningInLambda(),
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
		}
	})
	return serverlessConfig
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" || os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
}

// AdaptConfigForLambda overrides the deployment description for Lambda.
// The override wins over anything set in the environment.
func AdaptConfigForLambda(config *Config) *Config {
	config.Service = ServiceConfig{
		DeploymentType:   LambdaDeploymentType,
		ImageType:        LambdaImageType,
		RuntimeInterface: LambdaRuntimeInterface,
	}
	// Logs are collected by CloudWatch; colours and tty detection do not apply
	config.Log.Format = "json"
	return config
}

// GetLambdaConfig loads the configuration used by the Lambda entrypoint
func GetLambdaConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	return AdaptConfigForLambda(config), nil
}
