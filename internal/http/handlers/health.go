package handlers

import (
	"net/http"
	"sync"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
)

const serviceName = "storefront-gateway"

type HealthHandler struct {
	Checks []clients.HealthCheck
}

func (h *HealthHandler) Gateway(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

// Upstreams checks every backend concurrently. The gateway itself stays "ok";
// "degraded" tells the caller at least one upstream failed.
func (h *HealthHandler) Upstreams(w http.ResponseWriter, r *http.Request) {
	results := make([]clients.HealthResult, len(h.Checks))

	var wg sync.WaitGroup
	wg.Add(len(h.Checks))
	for i := range h.Checks {
		i := i
		go func() {
			defer wg.Done()
			results[i] = clients.CheckHealth(r.Context(), h.Checks[i])
		}()
	}
	wg.Wait()

	status := "ok"
	for _, res := range results {
		if !res.OK {
			status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"service":  serviceName,
		"upstream": results,
	})
}
