package ports

// MetricsRecorder receives business outcomes from the services. The
// Prometheus-backed implementation lives in internal/api/metrics.
type MetricsRecorder interface {
	// Registration records a register outcome: "created", "exists",
	// "invalid" or "error".
	Registration(result string)
	// Login records a login outcome: "success", "not_found",
	// "invalid_password" or "error".
	Login(result string)
	RequestCreated(propertyType string)
	IdempotentReplay()
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) Registration(string)   {}
func (NopMetrics) Login(string)          {}
func (NopMetrics) RequestCreated(string) {}
func (NopMetrics) IdempotentReplay()     {}
