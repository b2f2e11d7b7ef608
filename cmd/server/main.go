package main

import (
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-analytics/internal/api"
	"github.com/fleetops/fleet-analytics/internal/config"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	router := api.SetupRouter(cfg, log)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
