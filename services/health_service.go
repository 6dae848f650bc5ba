package services

import (
	"context"
	"time"

	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

// HealthService reports service liveness details. The backend holds no
// external stateful dependencies, so health is a function of the process
// being up.
type HealthService struct {
	version   string
	startTime time.Time
}

func NewHealthService(version string) *HealthService {
	return &HealthService{
		version:   version,
		startTime: time.Now(),
	}
}

func (s *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	return types.HealthCheck{
		Status: types.HealthStatusUp,
		Components: map[string]types.HealthComponent{
			"server": {Status: types.HealthStatusUp},
		},
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}
}
