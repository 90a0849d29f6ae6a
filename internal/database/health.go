package database

import "time"

// HealthStatus is a point-in-time snapshot of database health.
type HealthStatus struct {
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	OpenConnections int       `json:"open_connections"`
	InUse           int       `json:"in_use"`
	Idle            int       `json:"idle"`
	WaitCount       int64     `json:"wait_count"`
	CheckedAt       time.Time `json:"checked_at"`
}
