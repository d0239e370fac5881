package kv

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented decorates a Store with operation counters.
type Instrumented struct {
	next Store
	ops  *prometheus.CounterVec
}

// Instrument wraps next so that every call is counted in ops, labelled by
// operation ("get", "set", "delete") and result ("ok", "miss", "error").
func Instrument(next Store, ops *prometheus.CounterVec) *Instrumented {
	return &Instrumented{next: next, ops: ops}
}

// Get implements Store.
func (s *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.next.Get(ctx, key)
	switch {
	case err != nil:
		s.ops.WithLabelValues("get", "error").Inc()
	case !ok:
		s.ops.WithLabelValues("get", "miss").Inc()
	default:
		s.ops.WithLabelValues("get", "ok").Inc()
	}
	return v, ok, err
}

// Set implements Store.
func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	err := s.next.Set(ctx, key, value)
	s.ops.WithLabelValues("set", result(err)).Inc()
	return err
}

// Delete implements Store.
func (s *Instrumented) Delete(ctx context.Context, key string) error {
	err := s.next.Delete(ctx, key)
	s.ops.WithLabelValues("delete", result(err)).Inc()
	return err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
