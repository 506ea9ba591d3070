// internal/handlers/compare/handler.go

// Package compare answers side-by-side questions about jurisdictions:
// direct comparisons, lookalike search, and field briefs.
package compare

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fieldscope/internal/common/errors"
	"fieldscope/internal/common/logger"
	"fieldscope/internal/dataservice"
	"fieldscope/internal/models"
	"fieldscope/internal/nlu/extract"
)

const HandlerName = "compare-handler"

var ownedIntents = []models.Intent{
	models.IntentCompareJurisdictions,
	models.IntentCompareFindSimilar,
	models.IntentCompareFieldBrief,
}

type Handler struct {
	config *Config
	data   dataservice.DataService
	logger logger.Logger
}

func NewHandler(config *Config, data dataservice.DataService, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		data:   data,
		logger: log.WithFields(map[string]interface{}{"handler": HandlerName}),
	}
}

func (h *Handler) Name() string                { return HandlerName }
func (h *Handler) QueryType() models.QueryType { return models.QueryTypeCompare }
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
	case models.IntentCompareJurisdictions:
		return h.compareJurisdictions(ctx, q)
	case models.IntentCompareFindSimilar:
		return h.findSimilar(ctx, q)
	case models.IntentCompareFieldBrief:
		return h.fieldBrief(ctx, q)
	default:
		return nil, errors.NewHandlerNotFoundError(string(q.Intent))
	}
}

func (h *Handler) compareJurisdictions(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	areas := q.Entities.AreaReferences()
	if len(areas) < 2 {
		result := h.newResult(false,
			"I need two areas to compare. Name two jurisdictions or districts, like \"Compare Lansing and East Lansing\".")
		result.SuggestedActions = []string{
			"Compare Lansing and East Lansing",
			"Compare Troy and Royal Oak",
		}
		return result, nil
	}

	rows, missing, err := h.collectRows(ctx, areas)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Comparison of %s:\n", strings.Join(areas, " and ")))
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("- %s: %s registered voters, %s doors, %.1f%% average turnout, swing %.0f, lean %.0f\n",
			row.Jurisdiction,
			models.FormatCount(row.RegisteredVoters),
			models.FormatCount(row.DoorCount),
			row.AverageTurnout,
			row.SwingScore,
			row.PartisanLean))
	}
	if len(missing) > 0 {
		b.WriteString(fmt.Sprintf("No trend data for %s.", strings.Join(missing, ", ")))
	}

	result := h.newResult(true, strings.TrimSpace(b.String()))
	result.Data = map[string]interface{}{
		"rows": rows,
		"mapCommand": map[string]interface{}{
			"action": "highlight",
			"areas":  areas,
		},
	}
	result.SuggestedActions = []string{
		fmt.Sprintf("Give me a field brief on %s", strings.Join(areas[:2], " and ")),
		"Show me target precincts in " + areas[0],
	}
	return result, nil
}

func (h *Handler) findSimilar(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	if len(q.Entities.Jurisdictions) == 0 {
		result := h.newResult(false,
			"Please specify a jurisdiction to find lookalikes for.")
		result.SuggestedActions = []string{
			"Find areas similar to Lansing",
			"Find areas similar to Troy",
		}
		return result, nil
	}

	target := q.Entities.Jurisdictions[0]
	trend, err := h.data.GetJurisdictionTrend(ctx, target)
	if err == dataservice.ErrNotFound {
		result := h.newResult(false, fmt.Sprintf(
			"I don't have trend data for %s. Try another jurisdiction.", target))
		return result, nil
	}
	if err != nil {
		return nil, errors.NewDataServiceFailedError("GetJurisdictionTrend", err)
	}

	all, err := h.data.ListJurisdictionTrends(ctx)
	if err != nil {
		return nil, errors.NewDataServiceFailedError("ListJurisdictionTrends", err)
	}

	var matches []similarMatch
	for _, other := range all {
		if strings.EqualFold(other.Jurisdiction, target) {
			continue
		}
		matches = append(matches, similarMatch{
			Jurisdiction: other.Jurisdiction,
			Distance:     trend.TrendDistance(other),
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if len(matches) > h.config.SimilarLimit {
		matches = matches[:h.config.SimilarLimit]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Jurisdiction
	}

	result := h.newResult(true, fmt.Sprintf(
		"Jurisdictions most similar to %s by trend profile: %s.", target, strings.Join(names, ", ")))
	result.Data = map[string]interface{}{
		"target":  target,
		"matches": matches,
	}
	if len(names) > 0 {
		result.SuggestedActions = []string{
			fmt.Sprintf("Compare %s and %s", target, names[0]),
		}
	}
	return result, nil
}

func (h *Handler) fieldBrief(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	areas := q.Entities.AreaReferences()
	if len(areas) < 2 {
		result := h.newResult(false,
			"A field brief needs at least two areas to put side by side.")
		result.SuggestedActions = []string{
			"Field brief on Lansing and East Lansing",
		}
		return result, nil
	}

	rows, missing, err := h.collectRows(ctx, areas)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Field Brief: %s\n", strings.Join(areas, " vs ")))
	for _, row := range rows {
		b.WriteString(fmt.Sprintf(
			"%s — %s doors to knock. Turnout averages %.1f%%. Swing %.0f / lean %.0f: %s.\n",
			row.Jurisdiction,
			models.FormatCount(row.DoorCount),
			row.AverageTurnout,
			row.SwingScore,
			row.PartisanLean,
			briefPosture(row)))
	}
	if len(missing) > 0 {
		b.WriteString(fmt.Sprintf("No trend data for %s.", strings.Join(missing, ", ")))
	}

	result := h.newResult(true, strings.TrimSpace(b.String()))
	result.Data = map[string]interface{}{"rows": rows}
	result.SuggestedActions = []string{
		"Show me target precincts in " + areas[0],
		fmt.Sprintf("Plan a canvass in %s", areas[0]),
	}
	return result, nil
}

// collectRows resolves trend data for each area, tolerating unknown areas
// but failing on collaborator errors.
func (h *Handler) collectRows(ctx context.Context, areas []string) ([]comparisonRow, []string, error) {
	var rows []comparisonRow
	var missing []string
	for _, area := range areas {
		trend, err := h.data.GetJurisdictionTrend(ctx, area)
		if err == dataservice.ErrNotFound {
			missing = append(missing, area)
			continue
		}
		if err != nil {
			return nil, nil, errors.NewDataServiceFailedError("GetJurisdictionTrend", err)
		}
		rows = append(rows, comparisonRow{
			Jurisdiction:     trend.Jurisdiction,
			RegisteredVoters: trend.RegisteredVoters,
			DoorCount:        trend.DoorCount,
			AverageTurnout:   trend.AverageTurnout(),
			SwingScore:       trend.SwingScore,
			PartisanLean:     trend.PartisanLean,
		})
	}
	return rows, missing, nil
}

func briefPosture(row comparisonRow) string {
	switch {
	case row.SwingScore >= 60:
		return "persuasion territory"
	case row.PartisanLean >= 70:
		return "turnout territory"
	default:
		return "mixed program"
	}
}

func (h *Handler) newResult(success bool, response string) *models.HandlerResult {
	return &models.HandlerResult{
		Success:  success,
		Response: response,
		Metadata: map[string]interface{}{
			models.MetaHandlerName: HandlerName,
			models.MetaQueryType:   string(models.QueryTypeCompare),
		},
	}
}
