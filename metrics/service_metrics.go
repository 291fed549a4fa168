package metrics

// MetricsWriter records source request outcomes for one service
type MetricsWriter struct {
	metrics     *Metrics
	serviceName string
}

// NewMetricsWriter creates a writer recording into the given Metrics
// under the specified service label
func NewMetricsWriter(metrics *Metrics, serviceName string) *MetricsWriter {
	return &MetricsWriter{
		metrics:     metrics,
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// OnRequest implements the source client's status handler
func (mw *MetricsWriter) OnRequest(status string) {
	mw.metrics.SourceRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}
