// Package mapper builds plain nested objects from XML documents using
// declarative, per-version field-mapping schemas. It has no knowledge of
// protocol semantics: everything version-specific lives in the Bundle data.
package mapper

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// FieldMapping is one declarative rule: evaluate Selector relative to the
// current context node and store the result under Key. With Multi set the
// destination is always a list, one entry per match. A non-empty Schema
// maps each matched node recursively through the named sub-schema instead
// of taking its text content.
type FieldMapping struct {
	Selector string
	Key      string
	Multi    bool
	Schema   string
}

// Schema is an ordered collection of field mappings sharing one context.
type Schema []FieldMapping

// Bundle holds everything needed to map one protocol version: the
// namespace prefix table the selectors are written against, the named
// schemas, and an informational table of result-format codes to labels.
type Bundle struct {
	Namespaces map[string]string
	Schemas    map[string]Schema
	Formats    map[string]string
}

// Build maps the named schema against ctx and returns a nested object of
// strings, []any and map[string]any values. Single mappings with no match
// are omitted; multi mappings always yield a list, possibly empty. Build
// never mutates the document and is safe to call concurrently on the same
// tree. An unknown schema name or a selector that does not compile against
// the namespace table is a configuration error.
func (b *Bundle) Build(ctx *xmlquery.Node, schemaName string) (map[string]any, error) {
	schema, ok := b.Schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", schemaName)
	}

	object := make(map[string]any, len(schema))
	for _, mapping := range schema {
		expr, err := xpath.CompileWithNS(mapping.Selector, b.Namespaces)
		if err != nil {
			return nil, fmt.Errorf("could not compile selector %q in schema %q: %w", mapping.Selector, schemaName, err)
		}

		if mapping.Multi {
			nodes := xmlquery.QuerySelectorAll(ctx, expr)
			values := make([]any, 0, len(nodes))
			for _, node := range nodes {
				value, err := b.valueOf(node, mapping)
				if err != nil {
					return nil, err
				}

				values = append(values, value)
			}

			object[mapping.Key] = values
			continue
		}

		node := xmlquery.QuerySelector(ctx, expr)
		if node == nil {
			continue
		}

		value, err := b.valueOf(node, mapping)
		if err != nil {
			return nil, err
		}

		object[mapping.Key] = value
	}

	return object, nil
}

func (b *Bundle) valueOf(node *xmlquery.Node, mapping FieldMapping) (any, error) {
	if mapping.Schema == "" {
		return strings.TrimSpace(node.InnerText()), nil
	}

	return b.Build(node, mapping.Schema)
}
