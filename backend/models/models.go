// ABOUTME: Shared API response models
// ABOUTME: JSON-serializable structures for errors and health status

package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Status       string `json:"status"`
	CacheEntries int    `json:"cache_entries"`
	Version      string `json:"version,omitempty"`
}
