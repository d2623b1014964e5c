package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type genCmd struct {
}

func (c genCmd) Run(g globalCmd, args []string) error {
	filename := defaultRuleFileName + ".yaml"
	if len(args) > 0 {
		filename = args[0]
	}

	filename, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "output: %v\n", filename)

	content, err := marshalRule(defaultRule(), filename)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, content, 0o644)
}

// marshalRule encodes rule as JSON for .json files and as YAML otherwise.
func marshalRule(rule Rule, filename string) ([]byte, error) {
	if in(filepath.Ext(filename), ".json") {
		return json.MarshalIndent(rule, "", "  ")
	}
	return yaml.Marshal(rule)
}
