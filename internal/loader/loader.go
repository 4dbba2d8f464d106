// Package loader reads and writes interchange documents describing
// factors, enactments, and holdings. Documents may be YAML or JSON and
// may reference any named object by its name instead of restating it.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avernik/doctrina/internal/law"
)

// Document is the loaded form of one interchange file. Factors and
// Enactments hold the top-level named objects declared outside any
// holding; Holdings hold every holding in document order.
type Document struct {
	Factors    []law.Factor
	Enactments []*law.Enactment
	Holdings   []*law.Holding
}

// LoadFile reads a document, choosing the format by file extension.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	}
	return nil, fmt.Errorf("unsupported document format %q", filepath.Ext(path))
}

// LoadYAML reads a document from YAML.
func LoadYAML(data []byte) (*Document, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml document: %w", err)
	}
	return readDocument(root)
}

// LoadJSON reads a document from JSON.
func LoadJSON(data []byte) (*Document, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse json document: %w", err)
	}
	return readDocument(root)
}

func readDocument(root any) (*Document, error) {
	top, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root must be a mapping, not %T", root)
	}
	r := newReader()
	r.indexNames(root)
	doc := &Document{}
	for i, node := range asList(top["factors"]) {
		f, err := r.factor(node)
		if err != nil {
			return nil, fmt.Errorf("factors[%d]: %w", i, err)
		}
		doc.Factors = append(doc.Factors, f)
	}
	for i, node := range asList(top["enactments"]) {
		e, err := r.enactment(node)
		if err != nil {
			return nil, fmt.Errorf("enactments[%d]: %w", i, err)
		}
		doc.Enactments = append(doc.Enactments, e)
	}
	for i, node := range asList(top["holdings"]) {
		h, err := r.holding(node)
		if err != nil {
			return nil, fmt.Errorf("holdings[%d]: %w", i, err)
		}
		doc.Holdings = append(doc.Holdings, h)
	}
	return doc, nil
}

// asList treats a missing field as empty and a bare element as a
// single-element list, so brackets may be omitted around one item.
func asList(node any) []any {
	switch v := node.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

func boolField(rec map[string]any, key string, fallback bool) bool {
	if b, ok := rec[key].(bool); ok {
		return b
	}
	return fallback
}
