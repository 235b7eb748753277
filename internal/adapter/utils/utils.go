package utils

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func GetNewUUID() string {
	return uuid.New().String()
}

type RouterClient struct {
	Router *chi.Mux
}

func GetChiURLParam(request *http.Request, key string) string {
	return chi.URLParam(request, key)
}

// NewRouter returns a fresh mux with the prometheus handler mounted.
func NewRouter() RouterClient {
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	return RouterClient{Router: router}
}

// IsValidId accepts the ids GetNewUUID hands out.
func IsValidId(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
