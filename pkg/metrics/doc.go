// Package metrics exports carousel events to Prometheus.
//
// A [PrometheusRecorder] implements carousel.Metrics and is passed to
// carousel.New with carousel.WithMetrics. Several carousels may share one
// recorder; series are labelled by transition mode and trigger, not by
// instance.
package metrics
