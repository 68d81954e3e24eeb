package dashboard

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/trackit/internal/apiclient"
	dashboardDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/dashboard"
	"github.com/frahmantamala/trackit/internal/core/datamodel/incident"
)

const (
	Path = "/dashboard"
	// RecentLimit caps the recent incidents shown.
	RecentLimit = 5
)

type Service struct {
	client *apiclient.Client
	logger *slog.Logger
}

func NewService(client *apiclient.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Stats loads the dashboard figures, newest incidents first.
func (s *Service) Stats(ctx context.Context) (*dashboardDatamodel.Stats, error) {
	var stats dashboardDatamodel.Stats
	if err := s.client.Get(ctx, Path, nil, &stats); err != nil {
		return nil, err
	}
	if stats.MaterielsParStatut == nil {
		stats.MaterielsParStatut = map[string]int{}
	}
	recent := stats.IncidentsRecents
	if recent == nil {
		recent = []incident.Incident{}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date.Time)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	stats.IncidentsRecents = recent
	return &stats, nil
}
