// internal/dataservice/service.go

// Package dataservice is the reference-data collaborator behind the query
// handlers: precinct targeting scores, jurisdiction trends, and district
// rosters. Handlers treat it as opaque; implementations are a Postgres-backed
// service with a Redis read-through cache, and an in-memory seed used by
// tests and by deployments without a database.
package dataservice

import (
	"context"
	"errors"

	"fieldscope/internal/models"
)

// ErrNotFound is returned when the requested record does not exist. Handlers
// surface it as guidance, never as a hard failure.
var ErrNotFound = errors.New("dataservice: not found")

// DataService provides the authoritative facts handlers need.
type DataService interface {
	// GetPrecinctScores returns the targeting scores for one precinct.
	GetPrecinctScores(ctx context.Context, precinct string) (*models.PrecinctScores, error)

	// GetPrecinctTargetingScores returns the scores of every precinct in a
	// jurisdiction.
	GetPrecinctTargetingScores(ctx context.Context, jurisdiction string) ([]models.PrecinctScores, error)

	// GetJurisdictionTrend returns the electoral profile of one jurisdiction.
	GetJurisdictionTrend(ctx context.Context, jurisdiction string) (*models.JurisdictionTrend, error)

	// ListJurisdictionTrends returns the profiles of every known jurisdiction.
	ListJurisdictionTrends(ctx context.Context) ([]models.JurisdictionTrend, error)

	// GetDistrictRoster returns one district by canonical id.
	GetDistrictRoster(ctx context.Context, id string) (*models.District, error)

	// ListDistricts returns the full district inventory grouped by category.
	ListDistricts(ctx context.Context) (*models.DistrictInventory, error)
}
