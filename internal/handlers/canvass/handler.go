// internal/handlers/canvass/handler.go

// Package canvass answers canvass-operations queries: universe creation,
// staffing estimates, and multi-week walk plans.
package canvass

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

const HandlerName = "canvass-handler"

var ownedIntents = []models.Intent{
	models.IntentCanvassCreate,
	models.IntentCanvassEstimate,
	models.IntentCanvassPlan,
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
func (h *Handler) QueryType() models.QueryType { return models.QueryTypeCanvass }
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
	case models.IntentCanvassCreate:
		return h.createUniverse(ctx, q)
	case models.IntentCanvassEstimate:
		return h.estimateStaffing(q)
	case models.IntentCanvassPlan:
		return h.buildWalkPlan(ctx, q)
	default:
		return nil, errors.NewHandlerNotFoundError(string(q.Intent))
	}
}

// createUniverse has no mandatory entities: the door count falls back to the
// jurisdiction's known doors, then to the configured default.
func (h *Handler) createUniverse(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	doors, err := h.resolveDoorCount(ctx, q.Entities)
	if err != nil {
		return nil, err
	}

	scope := describeScope(q.Entities)

	result := h.newResult(true, fmt.Sprintf(
		"Canvass Universe ready: %s doors%s.", models.FormatCount(doors), scope))
	result.Data = map[string]interface{}{
		"doorCount":     doors,
		"jurisdictions": q.Entities.Jurisdictions,
		"segmentName":   q.Entities.SegmentName,
	}
	result.SuggestedActions = []string{
		fmt.Sprintf("How many volunteers for %s doors?", models.FormatCount(doors)),
		"Plan a multi-week canvass for this universe",
		"Show me target precincts for this area",
	}
	return result, nil
}

// estimateStaffing requires an explicit door count.
func (h *Handler) estimateStaffing(q models.ParsedQuery) (*models.HandlerResult, error) {
	if q.Entities.DoorCount == nil {
		result := h.newResult(false,
			"Please specify a door count for the estimate, like \"how many volunteers for 10,000 doors\".")
		result.SuggestedActions = []string{
			"How many volunteers for 10,000 doors?",
			"How many volunteers for 5,000 doors?",
		}
		return result, nil
	}

	est := h.estimate(*q.Entities.DoorCount)

	result := h.newResult(true, fmt.Sprintf(
		"Knocking %s doors takes about %s volunteer-hours. With %d-hour shifts you need roughly %s volunteers.",
		models.FormatCount(est.Doors),
		models.FormatCount(est.VolunteerHours),
		est.ShiftHours,
		models.FormatCount(est.Volunteers)))
	result.Data = map[string]interface{}{"estimate": est}
	result.SuggestedActions = []string{
		"Plan a multi-week canvass for this universe",
		"Show me target precincts to prioritize",
	}
	return result, nil
}

// buildWalkPlan paces the universe across the configured number of weeks.
func (h *Handler) buildWalkPlan(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error) {
	doors, err := h.resolveDoorCount(ctx, q.Entities)
	if err != nil {
		return nil, err
	}

	weeks := h.config.DefaultPlanWeeks
	perWeek := ceilDiv(doors, weeks)
	volsPerWeek := ceilDiv(perWeek, h.config.DoorsPerWeekPerVol)

	pace := make([]weeklyPace, 0, weeks)
	remaining := doors
	for w := 1; w <= weeks; w++ {
		weekDoors := perWeek
		if weekDoors > remaining {
			weekDoors = remaining
		}
		pace = append(pace, weeklyPace{Week: w, Doors: weekDoors, Volunteers: volsPerWeek})
		remaining -= weekDoors
	}

	est := h.estimate(doors)

	result := h.newResult(true, fmt.Sprintf(
		"Walk plan: %s doors over %d weeks%s. Pace is %s doors per week with about %s volunteers each week (%s volunteer-hours total).",
		models.FormatCount(doors),
		weeks,
		describeScope(q.Entities),
		models.FormatCount(perWeek),
		models.FormatCount(volsPerWeek),
		models.FormatCount(est.VolunteerHours)))
	result.Data = map[string]interface{}{
		"doorCount": doors,
		"weeks":     pace,
		"estimate":  est,
	}
	result.SuggestedActions = []string{
		"Show me target precincts to walk first",
		fmt.Sprintf("How many volunteers for %s doors?", models.FormatCount(doors)),
	}
	return result, nil
}

func (h *Handler) estimate(doors int) staffingEstimate {
	hours := ceilDiv(doors, h.config.DoorsPerHour)
	return staffingEstimate{
		Doors:          doors,
		VolunteerHours: hours,
		Volunteers:     ceilDiv(hours, h.config.ShiftHours),
		ShiftHours:     h.config.ShiftHours,
	}
}

// resolveDoorCount prefers an explicit count, then the jurisdiction's door
// total from the data service, then the configured default.
func (h *Handler) resolveDoorCount(ctx context.Context, e models.Entities) (int, error) {
	if e.DoorCount != nil {
		return *e.DoorCount, nil
	}

	total := 0
	for _, j := range e.Jurisdictions {
		trend, err := h.data.GetJurisdictionTrend(ctx, j)
		if err == dataservice.ErrNotFound {
			continue
		}
		if err != nil {
			return 0, errors.NewDataServiceFailedError("GetJurisdictionTrend", err)
		}
		total += trend.DoorCount
	}
	if total > 0 {
		return total, nil
	}
	return h.config.DefaultDoorCount, nil
}

func (h *Handler) newResult(success bool, response string) *models.HandlerResult {
	return &models.HandlerResult{
		Success:  success,
		Response: response,
		Metadata: map[string]interface{}{
			models.MetaHandlerName: HandlerName,
			models.MetaQueryType:   string(models.QueryTypeCanvass),
		},
	}
}

func describeScope(e models.Entities) string {
	var parts []string
	if len(e.Jurisdictions) > 0 {
		parts = append(parts, "in "+strings.Join(e.Jurisdictions, ", "))
	}
	if e.SegmentName != "" {
		parts = append(parts, fmt.Sprintf("from segment %q", e.SegmentName))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
