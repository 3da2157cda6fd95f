package status

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// Service wraps Registry for the service hub and optionally reports it to the log
type Service struct {
	registry *Registry
	interval time.Duration

	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}
}

// NewService wraps reg, creating one if nil
func NewService(reg *Registry) *Service {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Service{registry: reg}
}

// Name returns the hub identifier
func (s *Service) Name() string {
	return "status"
}

// Dependencies returns none; every other service may publish metrics
func (s *Service) Dependencies() []string {
	return nil
}

// Init applies the report interval
// args[0]: time.Duration (optional, zero disables reporting)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if d, ok := args[0].(time.Duration); ok {
			s.interval = d
		}
	}
	return nil
}

// Start launches the reporter when an interval is set
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval <= 0 || s.stopCh != nil {
		return nil
	}
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	go s.report(s.stopCh, s.done)
	return nil
}

// Stop halts the reporter
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh == nil {
		return nil
	}
	close(s.stopCh)
	<-s.done
	s.stopCh, s.done = nil, nil
	return nil
}

// Registry returns the underlying metrics registry
func (s *Service) Registry() *Registry {
	return s.registry
}

func (s *Service) report(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			log.Printf("[status] %s", Format(s.registry.Snapshot()))
		}
	}
}

// Format renders a snapshot as sorted key=value pairs
func Format(snap map[string]any) string {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", k, snap[k])
	}
	return sb.String()
}
