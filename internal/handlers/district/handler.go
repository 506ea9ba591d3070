// internal/handlers/district/handler.go

// Package district answers legislative-geography queries: the district
// inventory, roster lookups, and district-to-district comparisons.
package district

import (
	"context"
	"fmt"
	"strings"

	"fieldscope/internal/common/errors"
	"fieldscope/internal/common/logger"
	"fieldscope/internal/dataservice"
	"fieldscope/internal/models"
	"fieldscope/internal/nlu/extract"
)

const HandlerName = "district-handler"

var ownedIntents = []models.Intent{
	models.IntentDistrictList,
	models.IntentDistrictCompare,
	models.IntentDistrictLookup,
}

type Handler struct {
	data   dataservice.DataService
	logger logger.Logger
}

func NewHandler(data dataservice.DataService, log logger.Logger) *Handler {
	return &Handler{
		data:   data,
		logger: log.WithFields(map[string]interface{}{"handler": HandlerName}),
	}
}

func (h *Handler) Name() string                { return HandlerName }
func (h *Handler) QueryType() models.QueryType { return models.QueryTypeDistrict }
func (h *Handler) Intents() []models.Intent    { return ownedIntents }

func (h *Handler) CanHandle(q models.ParsedQuery) bool {
	for _, intent := range ownedIntents {
		if q.Intent == intent {
			return true
		}
	}
	return false
}

func (h *Handler) ExtractEntities(text string) models.Entities {
	return extract.Extract(text)
}

func (h *Handler) Handle(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	switch q.Intent {
	case models.IntentDistrictList:
		return h.listDistricts(ctx)
	case models.IntentDistrictCompare:
		return h.compareDistricts(ctx, q)
	case models.IntentDistrictLookup:
		return h.lookupDistrict(ctx, q)
	default:
		return nil, errors.NewHandlerNotFoundError(string(q.Intent))
	}
}

// listDistricts enumerates the inventory under its four category headers.
func (h *Handler) listDistricts(ctx context.Context) (*models.HandlerResult, error) {
	inv, err := h.data.ListDistricts(ctx)
	if err != nil {
		return nil, errors.NewDataServiceFailedError("ListDistricts", err)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("All %d districts:\n", inv.Total()))
	writeCategory(&b, models.DistrictCategoryCongressional, inv.Congressional)
	writeCategory(&b, models.DistrictCategoryStateSenate, inv.StateSenate)
	writeCategory(&b, models.DistrictCategoryStateHouse, inv.StateHouse)
	writeCategory(&b, models.DistrictCategorySchool, inv.School)

	result := h.newResult(true, strings.TrimSpace(b.String()))
	result.Data = map[string]interface{}{"inventory": inv}
	result.SuggestedActions = []string{
		"Who represents HD-73?",
		"Compare HD-73 and HD-74",
	}
	return result, nil
}

func writeCategory(b *strings.Builder, header string, districts []models.District) {
	b.WriteString(fmt.Sprintf("\n%s (%d):\n", header, len(districts)))
	for _, d := range districts {
		line := "- " + d.Name
		if d.Incumbent != "" {
			line += fmt.Sprintf(" — %s (%s)", d.Incumbent, d.Party)
		}
		b.WriteString(line + "\n")
	}
}

// compareDistricts requires two canonical district codes.
func (h *Handler) compareDistricts(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	codes := q.Entities.DistrictCodes()
	if len(codes) < 2 {
		result := h.newResult(false,
			"I need two districts to compare, like \"Compare HD-73 and HD-74\".")
		result.SuggestedActions = []string{
			"Compare HD-73 and HD-74",
			"Compare SD-21 and SD-28",
		}
		return result, nil
	}

	left, err := h.fetchRoster(ctx, codes[0])
	if err != nil {
		return nil, err
	}
	right, err := h.fetchRoster(ctx, codes[1])
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		unknown := codes[0]
		if left != nil {
			unknown = codes[1]
		}
		return h.newResult(false, fmt.Sprintf(
			"I don't have a district with id %s. Try \"List all districts\" to see what's available.", unknown)), nil
	}

	result := h.newResult(true, fmt.Sprintf(
		"%s vs %s:\n- %s: %s (%s), population %s\n- %s: %s (%s), population %s",
		left.Name, right.Name,
		left.Name, left.Incumbent, left.Party, models.FormatCount(left.Population),
		right.Name, right.Incumbent, right.Party, models.FormatCount(right.Population)))
	result.Data = map[string]interface{}{
		"comparison": districtComparison{Left: *left, Right: *right},
	}
	result.SuggestedActions = []string{
		"Show me target precincts in " + firstJurisdiction(*left),
	}
	return result, nil
}

// lookupDistrict requires one canonical district code.
func (h *Handler) lookupDistrict(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	codes := q.Entities.DistrictCodes()
	if len(codes) == 0 {
		result := h.newResult(false,
			"Please specify a district, like HD-73, SD-21, or MI-07.")
		result.SuggestedActions = []string{
			"Who represents HD-73?",
			"List all districts",
		}
		return result, nil
	}

	d, err := h.fetchRoster(ctx, codes[0])
	if err != nil {
		return nil, err
	}
	if d == nil {
		return h.newResult(false, fmt.Sprintf(
			"I don't have a district with id %s. Try \"List all districts\" to see what's available.", codes[0])), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s)", d.Name, d.ID))
	if d.Incumbent != "" {
		b.WriteString(fmt.Sprintf("\nIncumbent: %s (%s)", d.Incumbent, d.Party))
	}
	if d.Population > 0 {
		b.WriteString(fmt.Sprintf("\nPopulation: %s", models.FormatCount(d.Population)))
	}
	if len(d.Jurisdictions) > 0 {
		b.WriteString("\nCovers: " + strings.Join(d.Jurisdictions, ", "))
	}

	result := h.newResult(true, b.String())
	result.Data = map[string]interface{}{"district": d}
	result.SuggestedActions = []string{
		"Compare " + d.ID + " with a neighboring district",
		"Show me target precincts in " + firstJurisdiction(*d),
	}
	return result, nil
}

// fetchRoster maps ErrNotFound to a nil district so callers can answer with
// guidance instead of failing.
func (h *Handler) fetchRoster(ctx context.Context, id string) (*models.District, error) {
	d, err := h.data.GetDistrictRoster(ctx, id)
	if err == dataservice.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDataServiceFailedError("GetDistrictRoster", err)
	}
	return d, nil
}

func firstJurisdiction(d models.District) string {
	if len(d.Jurisdictions) > 0 {
		return d.Jurisdictions[0]
	}
	return d.Name
}

func (h *Handler) newResult(success bool, response string) *models.HandlerResult {
	return &models.HandlerResult{
		Success:  success,
		Response: response,
		Metadata: map[string]interface{}{
			models.MetaHandlerName: HandlerName,
			models.MetaQueryType:   string(models.QueryTypeDistrict),
		},
	}
}
