// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Formats.
const (
	Table = "table"
	JSON  = "json"
	YAML  = "yaml"
)

// Print writes v in format. For the table format it calls table instead.
func Print(w io.Writer, format string, v any, table func()) error {
	switch format {
	case JSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
		return nil
	case YAML:
		b, err := toYAML(v)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(b))
		return nil
	case Table, "":
		table()
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// toYAML goes through JSON so the keys match the API's json tags.
func toYAML(v any) ([]byte, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj interface{}
	if err := json.Unmarshal(jsonBytes, &obj); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	yamlBytes, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("error converting to YAML: %w", err)
	}
	return yamlBytes, nil
}
