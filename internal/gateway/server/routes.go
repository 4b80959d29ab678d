package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readiness/internal/gateway/handler/rpc"
	"readiness/internal/gateway/middleware"
)

func NewMux(
	assessmentHandler *rpc.AssessmentHandler,
	progressHandler *rpc.ProgressHandler,
) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	for path, handler := range assessmentHandler.Routes() {
		mux.Handle(path, handler)
	}

	// Websocket progress stream
	mux.HandleFunc("/ws/assessment/progress", progressHandler.HandleProgressWS)

	// Operational endpoints
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Middleware
	return middleware.CORS(mux)
}
