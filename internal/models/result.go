// internal/models/result.go
package models

// Metadata keys present on every HandlerResult.
const (
	MetaHandlerName = "handlerName"
	MetaQueryType   = "queryType"
	MetaRequestID   = "requestId"
	MetaIntent      = "intent"
	MetaConfidence  = "confidence"
	MetaError       = "error"
)

// HandlerResult is the structured outcome of handling one query. Success=false
// covers validation failures and unroutable queries; collaborator failures are
// returned as errors by handlers and degraded to a generic result upstream.
type HandlerResult struct {
	Success          bool                   `json:"success"`
	Response         string                 `json:"response"`
	Data             map[string]interface{} `json:"data,omitempty"`
	SuggestedActions []string               `json:"suggestedActions,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// WithMeta sets a metadata key, allocating the map on first use.
func (r *HandlerResult) WithMeta(key string, value interface{}) *HandlerResult {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}
	r.Metadata[key] = value
	return r
}
