package main

import (
	"tavolo/config"
	"tavolo/di"
	"tavolo/shared/logger"

	_ "tavolo/docs"
)

// @title Tavolo API
// @version 1.0
// @description Restaurant table booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
