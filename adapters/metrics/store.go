// Package metrics instruments a registration store with Prometheus collectors.
package metrics

import (
	"context"

	"facilitator/domain"
	"facilitator/interfaces"
	"facilitator/service"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "facilitator"

type instrumentedStore struct {
	next          interfaces.RegistrationStore
	registrations *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	pending       prometheus.Gauge
}

// NewStore wraps next so that every Add and Take is counted and the pending
// gauge follows the store size. Collectors are registered on reg.
func NewStore(next interfaces.RegistrationStore, reg prometheus.Registerer) (*instrumentedStore, error) {
	s := &instrumentedStore{
		next: service.NilPanic(next, "metrics.store.go: next store is required"),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Client registrations by result (added, duplicate).",
		}, []string{"result"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Proxy fetches by result (hit, empty).",
		}, []string{"result"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registrations_pending",
			Help:      "Registrations waiting to be fetched.",
		}),
	}
	for _, c := range []prometheus.Collector{s.registrations, s.fetches, s.pending} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *instrumentedStore) Add(ctx context.Context, endpoint domain.Endpoint) (bool, error) {
	added, err := s.next.Add(ctx, endpoint)
	if err != nil {
		return false, err
	}
	if added {
		s.registrations.WithLabelValues("added").Inc()
	} else {
		s.registrations.WithLabelValues("duplicate").Inc()
	}
	return added, nil
}

func (s *instrumentedStore) Take(ctx context.Context) (domain.Endpoint, bool, error) {
	endpoint, ok, err := s.next.Take(ctx)
	if err != nil {
		return domain.Endpoint{}, false, err
	}
	if ok {
		s.fetches.WithLabelValues("hit").Inc()
	} else {
		s.fetches.WithLabelValues("empty").Inc()
	}
	return endpoint, ok, nil
}

func (s *instrumentedStore) Size(ctx context.Context) (int, error) {
	n, err := s.next.Size(ctx)
	if err != nil {
		return 0, err
	}
	s.pending.Set(float64(n))
	return n, nil
}
