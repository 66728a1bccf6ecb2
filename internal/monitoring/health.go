package monitoring

import (
	"context"
	"sync"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	checkTimeout = 5 * time.Second
)

// CheckFunc reports a dependency's health; nil means healthy
type CheckFunc func(ctx context.Context) error

// HealthCheck is a registered check together with its latest outcome
type HealthCheck struct {
	Name        string        `json:"name"`
	Status      string        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration"`

	check CheckFunc
}

// HealthChecker is a registry of named checks. Each server owns its own.
type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]HealthCheck
}

// NewHealthChecker creates a registry holding the given checks
func NewHealthChecker(checks map[string]CheckFunc) *HealthChecker {
	h := &HealthChecker{checks: make(map[string]HealthCheck, len(checks))}
	for name, check := range checks {
		h.Register(name, check)
	}
	return h
}

// Register adds or replaces a named check
func (h *HealthChecker) Register(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.checks[name] = HealthCheck{Name: name, check: check}
}

// Run runs every registered check concurrently and returns the results by name
func (h *HealthChecker) Run() map[string]HealthCheck {
	h.mu.RLock()
	pending := make([]HealthCheck, 0, len(h.checks))
	for _, hc := range h.checks {
		pending = append(pending, hc)
	}
	h.mu.RUnlock()

	results := make(map[string]HealthCheck, len(pending))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, hc := range pending {
		wg.Add(1)
		go func(hc HealthCheck) {
			defer wg.Done()
			result := runCheck(hc)

			mu.Lock()
			results[hc.Name] = result
			mu.Unlock()
		}(hc)
	}
	wg.Wait()

	h.mu.Lock()
	for name, result := range results {
		if _, ok := h.checks[name]; ok {
			h.checks[name] = result
		}
	}
	h.mu.Unlock()

	return results
}

func runCheck(hc HealthCheck) HealthCheck {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	start := time.Now()
	hc.Status = StatusHealthy
	hc.Message = ""
	hc.LastChecked = start

	var err error
	if hc.check != nil {
		err = hc.check(ctx)
	}
	hc.Duration = time.Since(start)

	if err != nil {
		hc.Status = StatusUnhealthy
		hc.Message = err.Error()
	}
	return hc
}

func allHealthy(checks map[string]HealthCheck) bool {
	for _, check := range checks {
		if check.Status != StatusHealthy {
			return false
		}
	}
	return true
}
