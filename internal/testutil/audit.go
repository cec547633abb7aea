package testutil

import (
	"sync"

	"github.com/BruksfildServices01/salongo/internal/audit"
)

// AuditRecorder collects dispatched events synchronously.
type AuditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *AuditRecorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *AuditRecorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func (r *AuditRecorder) Events() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event(nil), r.events...)
}
