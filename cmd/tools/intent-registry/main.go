// cmd/tools/intent-registry/main.go

// intent-registry validates an on-disk intent registry and trial-matches
// queries against it, so rule weights can be tuned without redeploying.
package main

import (
	"flag"
	"fmt"
	"os"

	"fieldscope/internal/nlu/matcher"
	"fieldscope/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/intents.json", "Path to registry file")

	matchCmd := flag.NewFlagSet("match", flag.ExitOnError)
	matchPath := matchCmd.String("path", "configs/intents.json", "Path to registry file")
	matchQuery := matchCmd.String("query", "", "Query to classify")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		m, reg := mustLoad(*validatePath)
		fmt.Printf("Registry %s is valid: version %s, %d intents, %d routable.\n",
			*validatePath, reg.Version, len(reg.Intents), len(m.Intents()))

	case "match":
		matchCmd.Parse(os.Args[2:])
		if *matchQuery == "" {
			fmt.Println("Error: -query is required for match.")
			matchCmd.Usage()
			os.Exit(1)
		}
		m, _ := mustLoad(*matchPath)
		result := m.Match(*matchQuery)
		fmt.Printf("intent=%s queryType=%s confidence=%.2f\n",
			result.Intent, result.QueryType, result.Confidence)

	case "help", "-h", "--help":
		help()

	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		help()
		os.Exit(1)
	}
}

// mustLoad parses and schema-validates the registry, then compiles it into a
// matcher so rule regexes are checked too.
func mustLoad(path string) (*matcher.Matcher, *registry.IntentRegistry) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		fmt.Printf("Registry load failed: %v\n", err)
		os.Exit(1)
	}
	m, err := matcher.New(reg.Definitions())
	if err != nil {
		fmt.Printf("Registry does not compile: %v\n", err)
		os.Exit(1)
	}
	return m, reg
}

func help() {
	fmt.Println(`intent-registry - manage the intent definition registry

Usage:
  intent-registry validate [-path configs/intents.json]
  intent-registry match -query "Compare Lansing and East Lansing" [-path configs/intents.json]

Commands:
  validate   Schema-validate the registry and compile its rules
  match      Classify one query against the registry and print the result`)
}
