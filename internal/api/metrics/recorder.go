package metrics

import "github.com/allnik/property-service/internal/core/ports"

// Recorder feeds service outcomes into the package counters.
type Recorder struct{}

var _ ports.MetricsRecorder = Recorder{}

func (Recorder) Registration(result string) { RegistrationsTotal.WithLabelValues(result).Inc() }
func (Recorder) Login(result string)        { LoginsTotal.WithLabelValues(result).Inc() }
func (Recorder) IdempotentReplay()          { IdempotentReplaysTotal.Inc() }

func (Recorder) RequestCreated(propertyType string) {
	RequestsCreatedTotal.WithLabelValues(propertyType).Inc()
}
