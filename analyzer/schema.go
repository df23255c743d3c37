package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/pagelens/backend/htmldoc"
)

const unknownSchemaType = "Unknown"

// ExtractSchemas parses every JSON-LD script block. A block that fails to
// parse is recorded with isValid=false and the parser's error message; the
// failure is local and never stops the other blocks or extractors.
func ExtractSchemas(v htmldoc.View) []SchemaRecord {
	records := []SchemaRecord{}
	for _, node := range v.QueryAll("script[type='application/ld+json']") {
		raw := node.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		record := SchemaRecord{RawJSON: raw, Type: unknownSchemaType}
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			record.Error = err.Error()
		} else {
			record.Parsed = parsed
			record.IsValid = true
			record.Type = schemaType(parsed)
		}
		records = append(records, record)
	}
	return records
}

// schemaType derives the declared type from @type, or from the flattened
// @graph node types when the top level has none.
func schemaType(parsed any) string {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return unknownSchemaType
	}
	if t := joinTypes(obj["@type"]); t != "" {
		return t
	}
	if graph, ok := obj["@graph"].([]any); ok {
		var types []string
		for _, item := range graph {
			node, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if t := joinTypes(node["@type"]); t != "" {
				types = append(types, t)
			}
		}
		if len(types) > 0 {
			return strings.Join(types, ", ")
		}
	}
	return unknownSchemaType
}

func joinTypes(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case []any:
		var parts []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
