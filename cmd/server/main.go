package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/logging"
	"github.com/macalbert/cdk-intro-workshop/pkg/server"
)

type args struct {
	Host    string   `arg:"--host" help:"interface to bind, overrides HOST"`
	Port    string   `arg:"--port" help:"port to listen on, overrides PORT"`
	EnvFile []string `arg:"--env-file,separate" help:"dotenv file to load before reading the environment"`
}

func (args) Description() string {
	return "Workshop HTTP service"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load(a.EnvFile...)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if a.Host != "" {
		cfg.Host = a.Host
	}
	if a.Port != "" {
		cfg.Port = a.Port
	}

	if err := logging.Setup(cfg.Log); err != nil {
		logrus.Fatalf("Failed to configure logger: %v", err)
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize container: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.WithService(logrus.StandardLogger()).WithFields(logrus.Fields{
		"addr":        cfg.Addr(),
		"environment": cfg.Environment,
	}).Info("Configuration loaded")

	if err := server.Run(ctx, srv); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}
