package pagerduty

import (
	"context"
	"strings"

	"github.com/opskit/slipway/pkg/domain"
)

// Fixture is the offline directory used when no API token is configured.
// It serves a fixed service set and applies the same case-insensitive
// name/description substring filter as the live API.
type Fixture struct {
	services []domain.Service
}

// NewFixture creates a fixture directory with the default service set.
func NewFixture() *Fixture {
	return &Fixture{services: defaultServices()}
}

// NewFixtureWith creates a fixture directory serving the given services.
func NewFixtureWith(services []domain.Service) *Fixture {
	return &Fixture{services: services}
}

// FetchServices implements ports.Directory.
func (f *Fixture) FetchServices(_ context.Context, query string) ([]domain.Service, error) {
	if query == "" {
		out := make([]domain.Service, len(f.services))
		copy(out, f.services)
		return out, nil
	}

	needle := strings.ToLower(query)
	var out []domain.Service
	for _, svc := range f.services {
		if strings.Contains(strings.ToLower(svc.Name), needle) ||
			strings.Contains(strings.ToLower(svc.Description), needle) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func defaultServices() []domain.Service {
	return []domain.Service{
		{
			ID:          "P1DTXQY",
			Name:        "Dynatrace Production Service",
			Description: "Production monitoring service for Dynatrace",
			Status:      "active",
			CreatedAt:   "2024-01-15T10:30:00Z",
			UpdatedAt:   "2024-01-20T14:45:00Z",
		},
		{
			ID:          "P2DTXQZ",
			Name:        "Dynatrace Staging Service",
			Description: "Staging environment monitoring service",
			Status:      "active",
			CreatedAt:   "2024-01-16T09:15:00Z",
			UpdatedAt:   "2024-01-18T11:20:00Z",
		},
		{
			ID:          "P3DTXQA",
			Name:        "Application Performance Monitoring",
			Description: "APM service for application monitoring",
			Status:      "active",
			CreatedAt:   "2024-01-10T08:00:00Z",
			UpdatedAt:   "2024-01-25T16:30:00Z",
		},
		{
			ID:          "P4DTXQB",
			Name:        "Infrastructure Monitoring",
			Description: "Infrastructure monitoring and alerting",
			Status:      "active",
			CreatedAt:   "2024-01-12T12:45:00Z",
			UpdatedAt:   "2024-01-22T10:15:00Z",
		},
	}
}
