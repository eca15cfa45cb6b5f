package models

import (
	"encoding/json"
	"errors"
	"runtime"
	"testing"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
)

// TestFixedPayloads checks the literal root and health payloads
func TestFixedPayloads(t *testing.T) {
	welcome, err := json.Marshal(NewWelcomeMessage())
	if err != nil {
		t.Fatalf("Failed to marshal welcome message: %v", err)
	}
	if got, want := string(welcome), `{"message":"Hello from FastAPI!","deployment":"workshop"}`; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	health, err := json.Marshal(NewHealthStatus())
	if err != nil {
		t.Fatalf("Failed to marshal health status: %v", err)
	}
	if got, want := string(health), `{"status":"healthy","service":"fastapi-workshop"}`; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestNewServiceInfo(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ServiceConfig
		want ServiceInfo
	}{
		{
			name: "load defaults",
			cfg: config.ServiceConfig{
				DeploymentType:   config.DefaultDeploymentType,
				ImageType:        config.DefaultImageType,
				RuntimeInterface: config.DefaultRuntimeInterface,
			},
			want: ServiceInfo{
				Runtime:        RuntimeName,
				GoVersion:      runtime.Version(),
				DeploymentType: "unknown",
				ContainerInfo:  ContainerInfo{ImageType: "custom", RuntimeInterface: "direct"},
			},
		},
		{
			name: "lambda deployment",
			cfg: config.ServiceConfig{
				DeploymentType:   "lambda",
				ImageType:        "custom",
				RuntimeInterface: "ric",
			},
			want: ServiceInfo{
				Runtime:        RuntimeName,
				GoVersion:      runtime.Version(),
				DeploymentType: "lambda",
				ContainerInfo:  ContainerInfo{ImageType: "custom", RuntimeInterface: "ric"},
			},
		},
		{
			name: "empty values are kept",
			cfg:  config.ServiceConfig{DeploymentType: "", ImageType: "custom", RuntimeInterface: ""},
			want: ServiceInfo{
				Runtime:        RuntimeName,
				GoVersion:      runtime.Version(),
				DeploymentType: "",
				ContainerInfo:  ContainerInfo{ImageType: "custom", RuntimeInterface: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewServiceInfo(tt.cfg); got != tt.want {
				t.Errorf("NewServiceInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseEchoPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		want    string
	}{
		{name: "simple object", body: `{"a":1}`, want: `{"a":1}`},
		{name: "empty object", body: `{}`, want: `{}`},
		{name: "surrounding whitespace", body: " \n{\"a\":true}\t", want: `{"a":true}`},
		{name: "nested values", body: `{"list":[1,"two",null],"obj":{"x":1.5e3}}`, want: `{"list":[1,"two",null],"obj":{"x":1.5e3}}`},
		{name: "large integer", body: `{"id":9007199254740993}`, want: `{"id":9007199254740993}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "whitespace only", body: "   ", wantErr: ErrEmptyBody},
		{name: "array", body: `[1,2]`, wantErr: ErrNotObject},
		{name: "null", body: `null`, wantErr: ErrNotObject},
		{name: "string", body: `"hello"`, wantErr: ErrNotObject},
		{name: "number", body: `42`},
		{name: "malformed object", body: `{"a":`},
		{name: "trailing data", body: `{"a":1} {"b":2}`},
		{name: "not json", body: `hello`},
		{name: "invalid utf-8", body: "{\"a\":\"\xff\xfe\"}", wantErr: ErrInvalidEncoding},
		{name: "invalid utf-8 outside object", body: "\xff", wantErr: ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParseEchoPayload([]byte(tt.body))
			if tt.want == "" {
				if err == nil {
					t.Fatalf("Expected error, got payload %v", payload)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			out, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("Failed to marshal payload: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, out)
			}
		})
	}
}

func TestNewEchoResponse(t *testing.T) {
	payload, err := ParseEchoPayload([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out, err := json.Marshal(NewEchoResponse(payload))
	if err != nil {
		t.Fatalf("Failed to marshal echo response: %v", err)
	}
	if got, want := string(out), `{"echoed":{"a":1},"received_at":"fastapi-endpoint"}`; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
