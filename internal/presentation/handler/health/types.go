package health

// healthResponse reports liveness plus the live room count after a sweep
type healthResponse struct {
	Status      string `json:"status" example:"ok" enum:"ok,unhealthy"`  // Health status (ok or unhealthy)
	ActiveRooms int    `json:"active_rooms" example:"3"`                 // Rooms currently live in the registry
	Timestamp   string `json:"timestamp" example:"2024-01-01T12:00:00Z"` // Current server timestamp in RFC3339 format
	Uptime      string `json:"uptime" example:"2h30m45s"`                // Server uptime since start
}

// rootResponse identifies the service
type rootResponse struct {
	Service string `json:"service" example:"rendezvous-relay"`
	Status  string `json:"status" example:"running"`
}
