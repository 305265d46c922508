package testutils

import (
	"context"
	"sync"

	"tripplanner/pkg/trip"
)

// FakeQuerier records every call and answers through the optional funcs.
type FakeQuerier struct {
	PlanFunc func(trip.Query) (string, error)
	AskFunc  func(string) (string, error)

	mu    sync.Mutex
	plans []trip.Query
	asks  []string
}

func (f *FakeQuerier) Plan(_ context.Context, q trip.Query) (string, error) {
	f.mu.Lock()
	f.plans = append(f.plans, q)
	f.mu.Unlock()

	if f.PlanFunc == nil {
		return "", nil
	}
	return f.PlanFunc(q)
}

func (f *FakeQuerier) Ask(_ context.Context, query string) (string, error) {
	f.mu.Lock()
	f.asks = append(f.asks, query)
	f.mu.Unlock()

	if f.AskFunc == nil {
		return "", nil
	}
	return f.AskFunc(query)
}

// PlanCalls returns the queries passed to Plan so far.
func (f *FakeQuerier) PlanCalls() []trip.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]trip.Query(nil), f.plans...)
}

// AskCalls returns the texts passed to Ask so far.
func (f *FakeQuerier) AskCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.asks...)
}
