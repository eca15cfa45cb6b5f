package main

import (
	"fmt"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/middleware"
)

type args struct {
	Subject string        `arg:"positional,required" help:"principal the token is issued to"`
	TTL     time.Duration `arg:"--ttl" default:"1h" help:"token lifetime"`
	EnvFile []string      `arg:"--env-file,separate" help:"dotenv file to load before reading the environment"`
}

func (args) Description() string {
	return "Issues a bearer token accepted by the POST /echo guard"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load(a.EnvFile...)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	token, err := middleware.NewAuthService(cfg.Auth).GenerateToken(a.Subject, a.TTL)
	if err != nil {
		logrus.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
