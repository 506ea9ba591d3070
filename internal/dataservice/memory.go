// internal/dataservice/memory.go
package dataservice

import (
	"context"
	"sort"
	"strings"

	"fieldscope/internal/models"
)

// MemoryService serves seeded mid-Michigan reference data. It backs tests
// and deployments without a database. Data is immutable after construction,
// so reads need no locking.
type MemoryService struct {
	precincts map[string]models.PrecinctScores    // lowercased precinct name
	trends    map[string]models.JurisdictionTrend // lowercased jurisdiction
	districts map[string]models.District          // canonical id
}

func NewMemoryService() *MemoryService {
	s := &MemoryService{
		precincts: make(map[string]models.PrecinctScores),
		trends:    make(map[string]models.JurisdictionTrend),
		districts: make(map[string]models.District),
	}
	for _, p := range seedPrecincts {
		s.precincts[strings.ToLower(p.Precinct)] = p
	}
	for _, t := range seedTrends {
		s.trends[strings.ToLower(t.Jurisdiction)] = t
	}
	for _, d := range seedDistricts {
		s.districts[d.ID] = d
	}
	return s
}

func (s *MemoryService) GetPrecinctScores(ctx context.Context, precinct string) (*models.PrecinctScores, error) {
	if p, ok := s.precincts[strings.ToLower(precinct)]; ok {
		return &p, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryService) GetPrecinctTargetingScores(ctx context.Context, jurisdiction string) ([]models.PrecinctScores, error) {
	var out []models.PrecinctScores
	for _, p := range s.precincts {
		if strings.EqualFold(p.Jurisdiction, jurisdiction) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Precinct < out[j].Precinct })
	return out, nil
}

func (s *MemoryService) GetJurisdictionTrend(ctx context.Context, jurisdiction string) (*models.JurisdictionTrend, error) {
	if t, ok := s.trends[strings.ToLower(jurisdiction)]; ok {
		return &t, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryService) ListJurisdictionTrends(ctx context.Context) ([]models.JurisdictionTrend, error) {
	out := make([]models.JurisdictionTrend, 0, len(s.trends))
	for _, t := range s.trends {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Jurisdiction < out[j].Jurisdiction })
	return out, nil
}

func (s *MemoryService) GetDistrictRoster(ctx context.Context, id string) (*models.District, error) {
	if d, ok := s.districts[id]; ok {
		return &d, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryService) ListDistricts(ctx context.Context) (*models.DistrictInventory, error) {
	var inv models.DistrictInventory
	ids := make([]string, 0, len(s.districts))
	for id := range s.districts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		d := s.districts[id]
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
	return &inv, nil
}

var seedTrends = []models.JurisdictionTrend{
	{
		Jurisdiction:     "Lansing",
		RegisteredVoters: 78500,
		DoorCount:        43200,
		TurnoutHistory:   map[string]float64{"2020": 61.4, "2022": 47.8, "2024": 63.1},
		SwingScore:       58,
		PartisanLean:     71,
	},
	{
		Jurisdiction:     "East Lansing",
		RegisteredVoters: 32400,
		DoorCount:        14800,
		TurnoutHistory:   map[string]float64{"2020": 68.9, "2022": 51.2, "2024": 70.3},
		SwingScore:       44,
		PartisanLean:     79,
	},
	{
		Jurisdiction:     "Ann Arbor",
		RegisteredVoters: 91200,
		DoorCount:        38900,
		TurnoutHistory:   map[string]float64{"2020": 74.1, "2022": 58.6, "2024": 75.8},
		SwingScore:       39,
		PartisanLean:     84,
	},
	{
		Jurisdiction:     "Troy",
		RegisteredVoters: 62800,
		DoorCount:        29400,
		TurnoutHistory:   map[string]float64{"2020": 71.3, "2022": 55.9, "2024": 72.6},
		SwingScore:       66,
		PartisanLean:     49,
	},
	{
		Jurisdiction:     "Grand Rapids",
		RegisteredVoters: 138600,
		DoorCount:        67100,
		TurnoutHistory:   map[string]float64{"2020": 64.7, "2022": 49.3, "2024": 66.2},
		SwingScore:       61,
		PartisanLean:     62,
	},
	{
		Jurisdiction:     "Royal Oak",
		RegisteredVoters: 46900,
		DoorCount:        23800,
		TurnoutHistory:   map[string]float64{"2020": 72.5, "2022": 56.4, "2024": 73.9},
		SwingScore:       52,
		PartisanLean:     68,
	},
	{
		Jurisdiction:     "Ypsilanti",
		RegisteredVoters: 15700,
		DoorCount:        7200,
		TurnoutHistory:   map[string]float64{"2020": 59.8, "2022": 43.1, "2024": 61.5},
		SwingScore:       41,
		PartisanLean:     81,
	},
}

var seedPrecincts = []models.PrecinctScores{
	{Precinct: "Lansing 1", Jurisdiction: "Lansing", SwingScore: 82, PartisanLean: 74, TurnoutScore: 66, DoorCount: 1480},
	{Precinct: "Lansing 7", Jurisdiction: "Lansing", SwingScore: 71, PartisanLean: 69, TurnoutScore: 58, DoorCount: 1320},
	{Precinct: "Lansing 12", Jurisdiction: "Lansing", SwingScore: 55, PartisanLean: 62, TurnoutScore: 49, DoorCount: 1150},
	{Precinct: "Lansing 23", Jurisdiction: "Lansing", SwingScore: 38, PartisanLean: 48, TurnoutScore: 41, DoorCount: 980},
	{Precinct: "Willow 3", Jurisdiction: "Lansing", SwingScore: 77, PartisanLean: 70, TurnoutScore: 63, DoorCount: 1240},
	{Precinct: "East Lansing 4", Jurisdiction: "East Lansing", SwingScore: 49, PartisanLean: 83, TurnoutScore: 72, DoorCount: 890},
	{Precinct: "East Lansing 9", Jurisdiction: "East Lansing", SwingScore: 62, PartisanLean: 78, TurnoutScore: 55, DoorCount: 1010},
	{Precinct: "Troy 6", Jurisdiction: "Troy", SwingScore: 74, PartisanLean: 51, TurnoutScore: 69, DoorCount: 1390},
}

var seedDistricts = []models.District{
	{ID: "mi-07", Name: "Michigan's 7th Congressional District", Category: models.DistrictCategoryCongressional, Incumbent: "Curtis Hertel", Party: "D", Jurisdictions: []string{"Lansing", "East Lansing"}, Population: 775000},
	{ID: "mi-08", Name: "Michigan's 8th Congressional District", Category: models.DistrictCategoryCongressional, Incumbent: "Kristen McDonald Rivet", Party: "D", Jurisdictions: []string{"Flint", "Saginaw", "Bay City"}, Population: 772000},
	{ID: "mi-senate-21", Name: "State Senate District 21", Category: models.DistrictCategoryStateSenate, Incumbent: "Sarah Anthony", Party: "D", Jurisdictions: []string{"Lansing"}, Population: 265000},
	{ID: "mi-senate-28", Name: "State Senate District 28", Category: models.DistrictCategoryStateSenate, Incumbent: "Sam Singh", Party: "D", Jurisdictions: []string{"East Lansing", "Okemos"}, Population: 262000},
	{ID: "mi-house-73", Name: "State House District 73", Category: models.DistrictCategoryStateHouse, Incumbent: "Julie Brixie", Party: "D", Jurisdictions: []string{"Okemos", "Meridian Township"}, Population: 91000},
	{ID: "mi-house-74", Name: "State House District 74", Category: models.DistrictCategoryStateHouse, Incumbent: "Kara Hope", Party: "D", Jurisdictions: []string{"Holt", "Delta Township"}, Population: 90500},
	{ID: "mi-house-77", Name: "State House District 77", Category: models.DistrictCategoryStateHouse, Incumbent: "Emily Dievendorf", Party: "D", Jurisdictions: []string{"Lansing"}, Population: 92000},
	{ID: "lansing-public", Name: "Lansing Public School District", Category: models.DistrictCategorySchool, Jurisdictions: []string{"Lansing"}, Population: 112000},
	{ID: "east-lansing-public", Name: "East Lansing Public Schools", Category: models.DistrictCategorySchool, Jurisdictions: []string{"East Lansing"}, Population: 48000},
	{ID: "okemos-public", Name: "Okemos Public Schools", Category: models.DistrictCategorySchool, Jurisdictions: []string{"Okemos"}, Population: 36000},
}
