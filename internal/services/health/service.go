package health

import "internship-tracker/internal/applications"

// Counter reports how many applications are tracked per view.
type Counter interface {
	Counts() applications.Counts
}

// Status is the health payload.
type Status struct {
	OK           bool   `json:"ok"`
	Backend      string `json:"backend"`
	Applications int    `json:"applications"`
}

// Service encapsulates health-related checks.
type Service struct {
	backend string
	counter Counter
}

// NewService constructs a new health service. counter may be nil.
func NewService(backend string, counter Counter) *Service {
	return &Service{backend: backend, counter: counter}
}

// Status returns the current health payload.
func (s *Service) Status() Status {
	st := Status{OK: true, Backend: s.backend}
	if s.counter != nil {
		st.Applications = s.counter.Counts().All
	}
	return st
}
