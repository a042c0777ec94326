package analytics

import (
	"context"
	stderrors "errors"

	apperrors "veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/metrics"
)

// MultiSink writes to every sink and joins the failures. A failing sink does not stop the rest.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Name() string { return "multi" }

// Names lists the wrapped sinks in write order.
func (m *MultiSink) Names() []string {
	names := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		names = append(names, s.Name())
	}
	return names
}

func (m *MultiSink) Record(ctx context.Context, rec Record) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(ctx, rec); err != nil {
			metrics.AnalyticsWrites.WithLabelValues(s.Name(), "failed").Inc()
			errs = append(errs, apperrors.NewAnalyticsWriteFailedError(s.Name(), err))
			continue
		}
		metrics.AnalyticsWrites.WithLabelValues(s.Name(), "ok").Inc()
	}
	return stderrors.Join(errs...)
}
