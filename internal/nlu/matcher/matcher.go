// internal/nlu/matcher/matcher.go
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"fieldscope/internal/models"
)

// Rule is one weighted trigger inside an intent definition. A rule matches
// when any of its keywords (word-boundary), any of its phrases (substring),
// or its regex fires against the normalized query. Each rule contributes its
// weight at most once.
type Rule struct {
	Keywords []string `json:"keywords,omitempty"`
	Phrases  []string `json:"phrases,omitempty"`
	Regex    string   `json:"regex,omitempty"`
	Weight   float64  `json:"weight"`
}

// IntentDefinition binds an intent tag to its owning query type and trigger
// rules. Definitions are evaluated in registration order; that order is the
// tie-break for equal scores.
type IntentDefinition struct {
	Intent    models.Intent    `json:"intent"`
	QueryType models.QueryType `json:"queryType"`
	Rules     []Rule           `json:"rules"`
}

// MatchResult is the classification outcome for one query.
type MatchResult struct {
	Intent     models.Intent    `json:"intent"`
	QueryType  models.QueryType `json:"queryType"`
	Confidence float64          `json:"confidence"`
}

type compiledRule struct {
	weight    float64
	phrases   []string
	keywordRe *regexp.Regexp
	re        *regexp.Regexp
}

func (r *compiledRule) matches(norm string) bool {
	if r.keywordRe != nil && r.keywordRe.MatchString(norm) {
		return true
	}
	for _, p := range r.phrases {
		if strings.Contains(norm, p) {
			return true
		}
	}
	if r.re != nil && r.re.MatchString(norm) {
		return true
	}
	return false
}

type compiledDefinition struct {
	intent    models.Intent
	queryType models.QueryType
	rules     []compiledRule
	maxScore  float64
}

// Matcher classifies query text against a fixed ordered definition table.
// It holds no mutable state; Match is safe for concurrent use.
type Matcher struct {
	defs []compiledDefinition
}

// New compiles the definition table. It rejects empty tables, duplicate
// intent tags, rules without triggers, and invalid regexes.
func New(defs []IntentDefinition) (*Matcher, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("no intent definitions provided")
	}

	seen := make(map[models.Intent]bool, len(defs))
	compiled := make([]compiledDefinition, 0, len(defs))

	for _, def := range defs {
		if def.Intent == "" || def.Intent == models.IntentUnknown {
			return nil, fmt.Errorf("definition with invalid intent tag %q", def.Intent)
		}
		if seen[def.Intent] {
			return nil, fmt.Errorf("duplicate definition for intent %q", def.Intent)
		}
		seen[def.Intent] = true

		if len(def.Rules) == 0 {
			return nil, fmt.Errorf("intent %q has no rules", def.Intent)
		}

		cd := compiledDefinition{
			intent:    def.Intent,
			queryType: def.QueryType,
			rules:     make([]compiledRule, 0, len(def.Rules)),
		}
		for i, rule := range def.Rules {
			if rule.Weight <= 0 {
				return nil, fmt.Errorf("intent %q rule %d has non-positive weight", def.Intent, i)
			}
			if len(rule.Keywords) == 0 && len(rule.Phrases) == 0 && rule.Regex == "" {
				return nil, fmt.Errorf("intent %q rule %d has no triggers", def.Intent, i)
			}

			cr := compiledRule{weight: rule.Weight}

			if len(rule.Keywords) > 0 {
				quoted := make([]string, len(rule.Keywords))
				for j, kw := range rule.Keywords {
					quoted[j] = regexp.QuoteMeta(strings.ToLower(kw))
				}
				re, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
				if err != nil {
					return nil, fmt.Errorf("intent %q rule %d keywords: %w", def.Intent, i, err)
				}
				cr.keywordRe = re
			}

			for _, p := range rule.Phrases {
				cr.phrases = append(cr.phrases, strings.ToLower(p))
			}

			if rule.Regex != "" {
				re, err := regexp.Compile(rule.Regex)
				if err != nil {
					return nil, fmt.Errorf("intent %q rule %d regex: %w", def.Intent, i, err)
				}
				cr.re = re
			}

			cd.rules = append(cd.rules, cr)
			cd.maxScore += rule.Weight
		}

		compiled = append(compiled, cd)
	}

	return &Matcher{defs: compiled}, nil
}

// Intents returns the intent tags of the compiled table, in registration order.
func (m *Matcher) Intents() []models.Intent {
	out := make([]models.Intent, len(m.defs))
	for i, d := range m.defs {
		out[i] = d.intent
	}
	return out
}

// Match classifies a query. The winner is the definition with the highest
// summed rule weight; equal scores keep the earlier-registered definition.
// When no rule fires anywhere the result is IntentUnknown with confidence 0.
func (m *Matcher) Match(query string) MatchResult {
	norm := Normalize(query)
	if norm == "" {
		return MatchResult{Intent: models.IntentUnknown}
	}

	best := MatchResult{Intent: models.IntentUnknown}
	var bestScore float64

	for _, def := range m.defs {
		var score float64
		for i := range def.rules {
			if def.rules[i].matches(norm) {
				score += def.rules[i].weight
			}
		}
		if score > bestScore {
			bestScore = score
			confidence := score / def.maxScore
			if confidence > 1.0 {
				confidence = 1.0
			}
			best = MatchResult{
				Intent:     def.intent,
				QueryType:  def.queryType,
				Confidence: confidence,
			}
		}
	}

	return best
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(query string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(query)), " ")
}
