package signature

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// document is the top level of a signature file. Keys other than these are
// ignored, since feature configs carry training settings alongside.
type document struct {
	Fields   []map[string]any `mapstructure:"fields"`
	Features []map[string]any `mapstructure:"features"`
	QueryKey map[string]any   `mapstructure:"query_key"`
	Rank     map[string]any   `mapstructure:"rank"`
	Label    map[string]any   `mapstructure:"label"`
}

// fieldEntry is one item of the flat shape. Unknown keys are rejected.
type fieldEntry struct {
	Name     string `mapstructure:"name"`
	Required bool   `mapstructure:"required"`
	DType    string `mapstructure:"dtype"`
}

// featureEntry is one item of the feature-config shape. Training keys such
// as trainable, feature_layer_info or preprocessing are ignored.
type featureEntry struct {
	Name        string       `mapstructure:"name"`
	DType       string       `mapstructure:"dtype"`
	ServingInfo *servingInfo `mapstructure:"serving_info"`
}

type servingInfo struct {
	Name     string `mapstructure:"name"`
	Required bool   `mapstructure:"required"`
}

// Parse decodes a signature document into descriptors in declaration order.
func Parse(data []byte, format Format) ([]domain.FieldDescriptor, error) {
	raw, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}

	var doc document
	if err := bind(raw, &doc, false); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}

	switch {
	case len(doc.Fields) > 0 && (len(doc.Features) > 0 || doc.QueryKey != nil):
		return nil, fmt.Errorf("%w: fields and features cannot be mixed", domain.ErrInvalidDocument)
	case len(doc.Fields) > 0:
		return parseFields(doc.Fields)
	default:
		return parseFeatures(doc)
	}
}

func parseFields(entries []map[string]any) ([]domain.FieldDescriptor, error) {
	out := make([]domain.FieldDescriptor, 0, len(entries))
	for i, item := range entries {
		var e fieldEntry
		if err := bind(item, &e, true); err != nil {
			return nil, fmt.Errorf("%w: fields[%d]: %w", domain.ErrInvalidDocument, i, err)
		}
		d, err := domain.NewFieldDescriptor(e.Name, e.Required, domain.WithDType(domain.DType(e.DType)))
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseFeatures(doc document) ([]domain.FieldDescriptor, error) {
	type located struct {
		path string
		raw  map[string]any
	}

	var items []located
	if doc.QueryKey != nil {
		items = append(items, located{"query_key", doc.QueryKey})
	}
	for i, f := range doc.Features {
		items = append(items, located{fmt.Sprintf("features[%d]", i), f})
	}
	if doc.Rank != nil {
		items = append(items, located{"rank", doc.Rank})
	}
	if doc.Label != nil {
		items = append(items, located{"label", doc.Label})
	}

	var out []domain.FieldDescriptor
	for _, it := range items {
		var e featureEntry
		if err := bind(it.raw, &e, false); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDocument, it.path, err)
		}
		if e.ServingInfo == nil {
			continue
		}
		name := e.ServingInfo.Name
		if name == "" {
			name = e.Name
		}
		d, err := domain.NewFieldDescriptor(name, e.ServingInfo.Required, domain.WithDType(domain.DType(e.DType)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", it.path, err)
		}
		out = append(out, d)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: document declares no serving fields", domain.ErrEmptyRegistry)
	}
	return out, nil
}

func decode(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	case FormatTOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
		raw = tree.ToMap()
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported signature format %q", format)
	}
	return raw, nil
}

func bind(input any, target any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: strict,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
