// internal/handlers/precinct/handler.go

// Package precinct answers precinct-level questions: ranked targeting lists
// for a jurisdiction and score cards for individual precincts.
package precinct

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

const HandlerName = "precinct-handler"

var ownedIntents = []models.Intent{
	models.IntentPrecinctTargets,
	models.IntentPrecinctScores,
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
func (h *Handler) QueryType() models.QueryType { return models.QueryTypePrecinct }
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
	case models.IntentPrecinctTargets:
		return h.targetList(ctx, q)
	case models.IntentPrecinctScores:
		return h.scoreCard(ctx, q)
	default:
		return nil, errors.NewHandlerNotFoundError(string(q.Intent))
	}
}

// targetList ranks a jurisdiction's precincts by combined score, best first.
func (h *Handler) targetList(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	if len(q.Entities.Jurisdictions) == 0 {
		result := h.newResult(false,
			"Please specify a jurisdiction to pull target precincts for.")
		result.SuggestedActions = []string{
			"Show me target precincts in Lansing",
			"Best precincts to canvass in East Lansing",
		}
		return result, nil
	}

	jurisdiction := q.Entities.Jurisdictions[0]
	scores, err := h.data.GetPrecinctTargetingScores(ctx, jurisdiction)
	if err == dataservice.ErrNotFound {
		return h.newResult(false, fmt.Sprintf(
			"I don't have precinct data for %s. Try another jurisdiction.", jurisdiction)), nil
	}
	if err != nil {
		return nil, errors.NewDataServiceFailedError("GetPrecinctTargetingScores", err)
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].CombinedScore() > scores[j].CombinedScore()
	})
	if len(scores) > h.config.TargetLimit {
		scores = scores[:h.config.TargetLimit]
	}

	rows := make([]targetRow, len(scores))
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Top target precincts in %s:\n", jurisdiction))
	for i, s := range scores {
		rows[i] = targetRow{
			Precinct:      s.Precinct,
			CombinedScore: s.CombinedScore(),
			PriorityTier:  s.PriorityTier(),
			DoorCount:     s.DoorCount,
		}
		b.WriteString(fmt.Sprintf("%d. %s — score %.1f (%s priority, %s doors)\n",
			i+1, s.Precinct, s.CombinedScore(), s.PriorityTier(), models.FormatCount(s.DoorCount)))
	}

	result := h.newResult(true, strings.TrimSpace(b.String()))
	result.Data = map[string]interface{}{
		"jurisdiction": jurisdiction,
		"targets":      rows,
		"mapCommand": map[string]interface{}{
			"action":    "highlight",
			"precincts": precinctNames(rows),
		},
	}
	result.SuggestedActions = []string{
		fmt.Sprintf("Plan a canvass in %s", jurisdiction),
	}
	if len(rows) > 0 {
		result.SuggestedActions = append(result.SuggestedActions,
			fmt.Sprintf("Show me the scores for precinct %s", rows[0].Precinct))
	}
	return result, nil
}

// scoreCard reports one precinct's full score breakdown.
func (h *Handler) scoreCard(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	if len(q.Entities.Precincts) == 0 {
		result := h.newResult(false,
			"Please specify a precinct, like \"Show me the scores for precinct Willow 3\".")
		result.SuggestedActions = []string{
			"Show me the scores for precinct Willow 3",
			"Show me target precincts in Lansing",
		}
		return result, nil
	}

	name := q.Entities.Precincts[0]
	scores, err := h.data.GetPrecinctScores(ctx, name)
	if err == dataservice.ErrNotFound {
		return h.newResult(false, fmt.Sprintf(
			"I don't have scores for precinct %s. Check the precinct name and try again.", name)), nil
	}
	if err != nil {
		return nil, errors.NewDataServiceFailedError("GetPrecinctScores", err)
	}

	response := fmt.Sprintf(
		"Precinct %s (%s):\n- Swing: %.0f\n- Partisan lean: %.0f\n- Turnout: %.0f\n- Combined score: %.1f (%s priority)\n- Doors: %s",
		scores.Precinct, scores.Jurisdiction,
		scores.SwingScore, scores.PartisanLean, scores.TurnoutScore,
		scores.CombinedScore(), scores.PriorityTier(),
		models.FormatCount(scores.DoorCount))

	result := h.newResult(true, response)
	result.Data = map[string]interface{}{
		"scores":        scores,
		"combinedScore": scores.CombinedScore(),
		"priorityTier":  scores.PriorityTier(),
	}
	result.SuggestedActions = []string{
		"Show me target precincts in " + scores.Jurisdiction,
		fmt.Sprintf("Plan a canvass in %s", scores.Jurisdiction),
	}
	return result, nil
}

func precinctNames(rows []targetRow) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Precinct
	}
	return names
}

func (h *Handler) newResult(success bool, response string) *models.HandlerResult {
	return &models.HandlerResult{
		Success:  success,
		Response: response,
		Metadata: map[string]interface{}{
			models.MetaHandlerName: HandlerName,
			models.MetaQueryType:   string(models.QueryTypePrecinct),
		},
	}
}
