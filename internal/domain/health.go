package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LastChecked string `json:"lastChecked"`
}

// CollectionMetrics is returned by GET /v1/metrics/collections.
type CollectionMetrics struct {
	BRCodesGenerated     int64   `json:"brCodesGenerated"`
	BRCodesFailed        int64   `json:"brCodesFailed"`
	RemittancesGenerated int64   `json:"remittancesGenerated"`
	RemittancesFailed    int64   `json:"remittancesFailed"`
	ArchiveErrors        int64   `json:"archiveErrors"`
	CacheHitRate         float64 `json:"cacheHitRate"`
	Period               string  `json:"period"`
}
