package models

import (
	"runtime"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
)

// Fixed response values
const (
	WelcomeText     = "Hello from FastAPI!"
	DeploymentName  = "workshop"
	HealthyStatus   = "healthy"
	ServiceName     = "fastapi-workshop"
	RuntimeName     = "Gin"
	EchoReceiptMark = "fastapi-endpoint"
)

// WelcomeMessage is returned by the root endpoint
type WelcomeMessage struct {
	Message    string `json:"message" example:"Hello from FastAPI!"`
	Deployment string `json:"deployment" example:"workshop"`
}

// HealthStatus is returned by the health check endpoint
type HealthStatus struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"fastapi-workshop"`
}

// ContainerInfo describes the image the service runs from
type ContainerInfo struct {
	ImageType        string `json:"image_type" example:"custom"`
	RuntimeInterface string `json:"runtime_interface" example:"direct"`
}

// ServiceInfo describes the runtime and deployment of the service
type ServiceInfo struct {
	Runtime        string        `json:"runtime" example:"Gin"`
	GoVersion      string        `json:"go_version" example:"go1.24.6"`
	DeploymentType string        `json:"deployment_type" example:"unknown"`
	ContainerInfo  ContainerInfo `json:"container_info"`
}

// EchoResponse wraps an echoed payload
type EchoResponse struct {
	Echoed     EchoPayload `json:"echoed" swaggertype:"object"`
	ReceivedAt string      `json:"received_at" example:"fastapi-endpoint"`
}

// NewWelcomeMessage returns the root endpoint payload
func NewWelcomeMessage() WelcomeMessage {
	return WelcomeMessage{Message: WelcomeText, Deployment: DeploymentName}
}

// NewHealthStatus returns the health check payload
func NewHealthStatus() HealthStatus {
	return HealthStatus{Status: HealthyStatus, Service: ServiceName}
}

// NewServiceInfo builds the info payload from the deployment configuration.
// Values are reported as configured, empty strings included; defaults for
// unset variables are applied by config.Load.
func NewServiceInfo(cfg config.ServiceConfig) ServiceInfo {
	return ServiceInfo{
		Runtime:        RuntimeName,
		GoVersion:      runtime.Version(),
		DeploymentType: cfg.DeploymentType,
		ContainerInfo: ContainerInfo{
			ImageType:        cfg.ImageType,
			RuntimeInterface: cfg.RuntimeInterface,
		},
	}
}

// NewEchoResponse wraps payload with the receipt marker
func NewEchoResponse(payload EchoPayload) EchoResponse {
	return EchoResponse{Echoed: payload, ReceivedAt: EchoReceiptMark}
}
