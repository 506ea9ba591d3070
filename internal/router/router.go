// internal/router/router.go

// Package router dispatches classified queries to domain handlers. It owns
// the intent → handler registry, the confidence threshold, and the
// degradation of handler failures into user-safe results.
package router

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fieldscope/internal/common/errors"
	"fieldscope/internal/common/logger"
	"fieldscope/internal/common/metrics"
	"fieldscope/internal/models"
	"fieldscope/internal/nlu/matcher"
)

// Handler is the contract every domain handler implements. Intents returns
// the closed set of intent tags the handler owns; ownership is exclusive
// across the registry and checked at construction.
type Handler interface {
	Name() string
	QueryType() models.QueryType
	Intents() []models.Intent
	CanHandle(q models.ParsedQuery) bool
	ExtractEntities(text string) models.Entities
	Handle(ctx context.Context, q models.ParsedQuery) (*models.HandlerResult, error)
}

// Matcher is the classification dependency; satisfied by matcher.Matcher.
type Matcher interface {
	Match(query string) matcher.MatchResult
	Intents() []models.Intent
}

// Router routes one query per Route call. It is immutable after New and safe
// for concurrent use.
type Router struct {
	matcher       Matcher
	byIntent      map[models.Intent]Handler
	minConfidence float64
	logger        logger.Logger
}

// New builds the registry. It fails when two handlers claim the same intent
// or when the matcher can produce an intent no handler owns.
func New(m Matcher, handlers []Handler, minConfidence float64, log logger.Logger) (*Router, error) {
	byIntent := make(map[models.Intent]Handler)
	for _, h := range handlers {
		for _, intent := range h.Intents() {
			if prev, exists := byIntent[intent]; exists {
				return nil, errors.NewIntentOwnershipConflictError(string(intent), prev.Name(), h.Name())
			}
			byIntent[intent] = h
		}
	}

	for _, intent := range m.Intents() {
		if _, owned := byIntent[intent]; !owned {
			return nil, errors.NewHandlerNotFoundError(string(intent))
		}
	}

	return &Router{
		matcher:       m,
		byIntent:      byIntent,
		minConfidence: minConfidence,
		logger:        log,
	}, nil
}

// Route classifies, extracts, and dispatches a query. prior carries entities
// from earlier turns of the same conversation; its values only fill gaps.
// Route always returns a result, never an error: collaborator failures and
// handler panics degrade to a generic failure whose detail lives in metadata
// only.
func (r *Router) Route(ctx context.Context, query string, prior *models.Entities) *models.HandlerResult {
	start := time.Now()
	requestID := uuid.NewString()

	match := r.matcher.Match(query)

	log := r.logger.WithFields(map[string]interface{}{
		"requestId":  requestID,
		"intent":     string(match.Intent),
		"confidence": match.Confidence,
	})

	finish := func(result *models.HandlerResult) *models.HandlerResult {
		result.WithMeta(models.MetaRequestID, requestID).
			WithMeta(models.MetaIntent, string(match.Intent)).
			WithMeta(models.MetaConfidence, match.Confidence)
		metrics.RouteDuration.WithLabelValues(string(match.Intent)).Observe(time.Since(start).Seconds())
		return result
	}

	if match.Intent == models.IntentUnknown {
		log.Info("query did not match any intent", map[string]interface{}{"query": query})
		metrics.QueriesUnrouted.WithLabelValues("unknown_intent").Inc()
		return finish(clarificationResult())
	}

	if match.Confidence < r.minConfidence {
		log.Info("intent match below threshold", map[string]interface{}{"threshold": r.minConfidence})
		metrics.QueriesUnrouted.WithLabelValues("low_confidence").Inc()
		return finish(clarificationResult())
	}

	handler, ok := r.byIntent[match.Intent]
	if !ok {
		// Unreachable with a registry validated at New; kept for registries
		// rebuilt from hot-reloaded definitions.
		log.Error("matched intent has no handler", nil)
		metrics.QueriesUnrouted.WithLabelValues("no_handler").Inc()
		return finish(clarificationResult())
	}

	entities := handler.ExtractEntities(query)
	if prior != nil {
		entities = entities.Merge(*prior)
	}

	parsed := models.ParsedQuery{
		OriginalQuery: query,
		Intent:        match.Intent,
		Entities:      entities,
		Confidence:    match.Confidence,
	}

	result, err := r.dispatch(ctx, handler, parsed)
	if err != nil {
		log.WithError(err).Error("handler failed", map[string]interface{}{"handler": handler.Name()})
		metrics.HandlerFailures.WithLabelValues(handler.Name(), errorCode(err)).Inc()
		degraded := degradedResult(handler)
		degraded.WithMeta(models.MetaError, err.Error())
		return finish(degraded)
	}

	if !result.Success {
		metrics.ValidationFailures.WithLabelValues(string(match.Intent)).Inc()
	}
	metrics.QueriesRouted.WithLabelValues(string(match.Intent), handler.Name()).Inc()
	return finish(result)
}

// dispatch isolates the handler call so a panic degrades like an error.
func (r *Router) dispatch(ctx context.Context, h Handler, q models.ParsedQuery) (result *models.HandlerResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errors.NewHandlerPanicError(h.Name(), rec)
		}
	}()

	result, err = h.Handle(ctx, q)
	if err == nil && result == nil {
		err = errors.NewHandlerPanicError(h.Name(), "handler returned nil result")
	}
	return result, err
}

func errorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "INTERNAL"
}

func clarificationResult() *models.HandlerResult {
	return &models.HandlerResult{
		Success: false,
		Response: "I'm not sure what you're asking for. Try a canvass, comparison, " +
			"district, or precinct question.",
		SuggestedActions: []string{
			"Create a canvass universe in Lansing",
			"Compare Lansing and East Lansing",
			"List all districts",
			"Show me target precincts in Lansing",
		},
	}
}

func degradedResult(h Handler) *models.HandlerResult {
	return &models.HandlerResult{
		Success:  false,
		Response: "Something went wrong answering that. Please try again in a moment.",
		Metadata: map[string]interface{}{
			models.MetaHandlerName: h.Name(),
			models.MetaQueryType:   string(h.QueryType()),
		},
	}
}
