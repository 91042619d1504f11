package handlers

import "net/http"

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// Health reports service and database status
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  Response{data=HealthStatus}
// @Router       /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := Store.Ping(); err != nil {
		dbStatus = "error"
	}
	writeJSON(w, http.StatusOK, HealthStatus{Status: "ok", DB: dbStatus})
}
