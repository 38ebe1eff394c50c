package handler

import (
	"net/http"

	"tavolo/config"
	"tavolo/di"
	"tavolo/shared/logger"

	_ "tavolo/docs"
)

// Handler is the serverless entrypoint; it builds the service per invocation
// and hands the request to the regular router.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Adaptor()(w, r)
}
