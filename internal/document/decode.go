// Package document decodes build documents and indexes them for the engine
package document

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
)

// Format is the encoding of a document
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a format name. Empty means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", errors.InvalidArgumentf("unsupported document format: %s", name)
	}
}

type entryHeader struct {
	Type string  `json:"type"`
	Name *string `json:"name"`
}

type textEntry struct {
	Text string `json:"text"`
}

type imageEntry struct {
	URL string `json:"url"`
}

// Decode reads a document: an ordered list of entries where metadata entries
// carry a reserved type and every other entry is a category.
func Decode(data []byte, format Format) (*build.Document, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "document must be a list of entries")
	}

	doc := &build.Document{
		Points: build.PointsConfig{Values: make(map[string]float64)},
	}

	for i, raw := range entries {
		var header entryHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "entry must be an object").
				WithMeta("entry", i)
		}

		if !build.IsMetadataType(header.Type) {
			if header.Type != "" && header.Name == nil {
				slog.Debug("skipping entry with unknown type", "entry", i, "type", header.Type)
				continue
			}
			category := &build.Category{}
			if err := json.Unmarshal(raw, category); err != nil {
				return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid category").
					WithMeta("entry", i)
			}
			doc.Categories = append(doc.Categories, category)
			continue
		}

		if err := decodeMetadata(doc, header.Type, raw); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid metadata entry").
				WithMeta("entry", i).
				WithMeta("type", header.Type)
		}
	}

	return doc, nil
}

func decodeMetadata(doc *build.Document, entryType string, raw json.RawMessage) error {
	switch entryType {
	case build.EntryTypeTitle:
		var entry textEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return err
		}
		doc.Title = entry.Text
	case build.EntryTypeDescription:
		var entry textEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return err
		}
		doc.Description = entry.Text
	case build.EntryTypeHeaderImage:
		var entry imageEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return err
		}
		doc.HeaderImage = entry.URL
	case build.EntryTypePoints:
		var points build.PointsConfig
		if err := json.Unmarshal(raw, &points); err != nil {
			return err
		}
		// Later points entries extend earlier ones
		for currency, value := range points.Values {
			doc.Points.Values[currency] = value
		}
		doc.Points.AllowNegative = append(doc.Points.AllowNegative, points.AllowNegative...)
		if len(points.AttributeRanges) > 0 {
			if doc.Points.AttributeRanges == nil {
				doc.Points.AttributeRanges = make(map[string]build.Range)
			}
			for name, r := range points.AttributeRanges {
				doc.Points.AttributeRanges[name] = r
			}
		}
	case build.EntryTypeTheme:
		doc.Theme = append(json.RawMessage(nil), raw...)
	}
	return nil
}

// yamlToJSON re-encodes YAML as JSON so both formats share one decoder
func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid yaml document")
	}

	converted, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "yaml document is not representable as json")
	}
	return converted, nil
}

// normalizeYAML turns map[any]any values, which json cannot encode, into
// map[string]any
func normalizeYAML(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for k, inner := range value {
			value[k] = normalizeYAML(inner)
		}
		return value
	case map[any]any:
		out := make(map[string]any, len(value))
		for k, inner := range value {
			out[yamlKey(k)] = normalizeYAML(inner)
		}
		return out
	case []any:
		for i, inner := range value {
			value[i] = normalizeYAML(inner)
		}
		return value
	default:
		return value
	}
}

func yamlKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	out, err := json.Marshal(k)
	if err != nil {
		return ""
	}
	return strings.Trim(string(out), `"`)
}
