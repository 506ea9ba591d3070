// pkg/registry/schema.go
package registry

// IntentRegistry is the on-disk form of the intent definition table. It lets
// deployments retune trigger rules without a rebuild.
type IntentRegistry struct {
	Version     string       `json:"version"`
	LastUpdated string       `json:"lastUpdated"`
	Intents     []IntentSpec `json:"intents"`
}

type IntentSpec struct {
	Intent      string     `json:"intent"`
	QueryType   string     `json:"queryType"`
	Description string     `json:"description,omitempty"`
	Rules       []RuleSpec `json:"rules"`
}

type RuleSpec struct {
	Keywords []string `json:"keywords,omitempty"`
	Phrases  []string `json:"phrases,omitempty"`
	Regex    string   `json:"regex,omitempty"`
	Weight   float64  `json:"weight"`
}

// registrySchema validates registry documents before they are trusted.
const registrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "intents"],
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "intents": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["intent", "queryType", "rules"],
        "properties": {
          "intent": {"type": "string", "minLength": 1},
          "queryType": {"type": "string", "enum": ["canvass", "compare", "district", "precinct"]},
          "description": {"type": "string"},
          "rules": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["weight"],
              "properties": {
                "keywords": {"type": "array", "items": {"type": "string"}},
                "phrases": {"type": "array", "items": {"type": "string"}},
                "regex": {"type": "string"},
                "weight": {"type": "number", "exclusiveMinimum": 0}
              }
            }
          }
        }
      }
    }
  }
}`
