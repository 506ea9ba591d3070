// internal/dataservice/postgres.go
package dataservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fieldscope/internal/common/logger"
	"fieldscope/internal/models"
)

// PostgresService reads reference data from Postgres with a Redis
// read-through cache. The redis client is optional; with nil every read goes
// to the database.
type PostgresService struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewPostgresService(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *PostgresService {
	return &PostgresService{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (s *PostgresService) GetPrecinctScores(ctx context.Context, precinct string) (*models.PrecinctScores, error) {
	cacheKey := "fieldscope:precinct:" + precinct

	var cached models.PrecinctScores
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT precinct, jurisdiction, swing_score, partisan_lean, turnout_score, door_count
		FROM precinct_scores
		WHERE LOWER(precinct) = LOWER($1)`, precinct)

	var p models.PrecinctScores
	err := row.Scan(&p.Precinct, &p.Jurisdiction, &p.SwingScore, &p.PartisanLean, &p.TurnoutScore, &p.DoorCount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("precinct scores query: %w", err)
	}

	s.cacheSet(ctx, cacheKey, p)
	return &p, nil
}

func (s *PostgresService) GetPrecinctTargetingScores(ctx context.Context, jurisdiction string) ([]models.PrecinctScores, error) {
	cacheKey := "fieldscope:targets:" + jurisdiction

	var cached []models.PrecinctScores
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT precinct, jurisdiction, swing_score, partisan_lean, turnout_score, door_count
		FROM precinct_scores
		WHERE LOWER(jurisdiction) = LOWER($1)
		ORDER BY precinct`, jurisdiction)
	if err != nil {
		return nil, fmt.Errorf("precinct targeting query: %w", err)
	}
	defer rows.Close()

	var out []models.PrecinctScores
	for rows.Next() {
		var p models.PrecinctScores
		if err := rows.Scan(&p.Precinct, &p.Jurisdiction, &p.SwingScore, &p.PartisanLean, &p.TurnoutScore, &p.DoorCount); err != nil {
			return nil, fmt.Errorf("precinct targeting scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("precinct targeting rows: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}

	s.cacheSet(ctx, cacheKey, out)
	return out, nil
}

func (s *PostgresService) GetJurisdictionTrend(ctx context.Context, jurisdiction string) (*models.JurisdictionTrend, error) {
	cacheKey := "fieldscope:trend:" + jurisdiction

	var cached models.JurisdictionTrend
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT jurisdiction, registered_voters, door_count, turnout_history, swing_score, partisan_lean
		FROM jurisdiction_trends
		WHERE LOWER(jurisdiction) = LOWER($1)`, jurisdiction)

	t, err := scanTrend(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("jurisdiction trend query: %w", err)
	}

	s.cacheSet(ctx, cacheKey, *t)
	return t, nil
}

func (s *PostgresService) ListJurisdictionTrends(ctx context.Context) ([]models.JurisdictionTrend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT jurisdiction, registered_voters, door_count, turnout_history, swing_score, partisan_lean
		FROM jurisdiction_trends
		ORDER BY jurisdiction`)
	if err != nil {
		return nil, fmt.Errorf("jurisdiction trends query: %w", err)
	}
	defer rows.Close()

	var out []models.JurisdictionTrend
	for rows.Next() {
		t, err := scanTrend(rows)
		if err != nil {
			return nil, fmt.Errorf("jurisdiction trends scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jurisdiction trends rows: %w", err)
	}
	return out, nil
}

func (s *PostgresService) GetDistrictRoster(ctx context.Context, id string) (*models.District, error) {
	cacheKey := "fieldscope:district:" + id

	var cached models.District
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, incumbent, party, population
		FROM districts
		WHERE id = $1`, id)

	var d models.District
	err := row.Scan(&d.ID, &d.Name, &d.Category, &d.Incumbent, &d.Party, &d.Population)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("district roster query: %w", err)
	}

	s.cacheSet(ctx, cacheKey, d)
	return &d, nil
}

func (s *PostgresService) ListDistricts(ctx context.Context) (*models.DistrictInventory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, incumbent, party, population
		FROM districts
		ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("district list query: %w", err)
	}
	defer rows.Close()

	var inv models.DistrictInventory
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.Incumbent, &d.Party, &d.Population); err != nil {
			return nil, fmt.Errorf("district list scan: %w", err)
		}
		switch d.Category {
		case models.DistrictCategoryCongressional:
			inv.Congressional = append(inv.Congressional, d)
		case models.DistrictCategoryStateSenate:
			inv.StateSenate = append(inv.StateSenate, d)
		case models.DistrictCategoryStateHouse:
			inv.StateHouse = append(inv.StateHouse, d)
		case models.DistrictCategorySchool:
			inv.School = append(inv.School, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("district list rows: %w", err)
	}
	return &inv, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrend(sc scanner) (*models.JurisdictionTrend, error) {
	var t models.JurisdictionTrend
	var history []byte
	if err := sc.Scan(&t.Jurisdiction, &t.RegisteredVoters, &t.DoorCount, &history, &t.SwingScore, &t.PartisanLean); err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &t.TurnoutHistory); err != nil {
			return nil, fmt.Errorf("turnout history decode: %w", err)
		}
	}
	return &t, nil
}

// cacheGet fills dest from Redis; a miss or an unavailable cache is not an
// error, just a database read.
func (s *PostgresService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		s.logger.Warn("cache entry corrupt", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (s *PostgresService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
