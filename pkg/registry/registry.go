// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"fieldscope/internal/models"
	"fieldscope/internal/nlu/matcher"
)

// LoadRegistry reads and schema-validates an intent registry file.
func LoadRegistry(path string) (*IntentRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

// ParseRegistry validates a registry document against the embedded schema and
// unmarshals it.
func ParseRegistry(data []byte) (*IntentRegistry, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(registrySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("registry schema validation error: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("registry document invalid: %s", strings.Join(problems, "; "))
	}

	var reg IntentRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry: %w", err)
	}
	return &reg, nil
}

// Definitions converts the registry into a matcher definition table,
// preserving document order.
func (r *IntentRegistry) Definitions() []matcher.IntentDefinition {
	defs := make([]matcher.IntentDefinition, 0, len(r.Intents))
	for _, spec := range r.Intents {
		def := matcher.IntentDefinition{
			Intent:    models.Intent(spec.Intent),
			QueryType: models.QueryType(spec.QueryType),
		}
		for _, rule := range spec.Rules {
			def.Rules = append(def.Rules, matcher.Rule{
				Keywords: rule.Keywords,
				Phrases:  rule.Phrases,
				Regex:    rule.Regex,
				Weight:   rule.Weight,
			})
		}
		defs = append(defs, def)
	}
	return defs
}
