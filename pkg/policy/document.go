package policy

import (
	"gopkg.in/yaml.v3"
)

// Document is a named, immutable unit of authorization rules. This layer
// validates only the envelope — name, version, description — and carries the
// rule body opaquely for the decision engine.
type Document struct {
	// Name uniquely identifies the document within a policy collection.
	Name string `yaml:"name"`

	// Version is an optional document revision.
	Version string `yaml:"version"`

	// Description explains the document's intent.
	Description string `yaml:"description"`

	// Rules is the opaque rule body, preserved exactly as parsed.
	Rules yaml.Node `yaml:"rules"`

	// Source is the path the document was loaded from; empty for documents
	// resolved from object content.
	Source string `yaml:"-"`
}

// ParseDocument parses a YAML policy document envelope. src names the origin
// for error reporting and is recorded on the document.
func ParseDocument(data []byte, src string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{
			Path:    src,
			Message: "invalid YAML",
			Cause:   err,
		}
	}

	if doc.Name == "" {
		return nil, &ParseError{
			Path:    src,
			Message: "document has no name",
		}
	}

	doc.Source = src
	return &doc, nil
}

// Set is an ordered collection of documents plus the combining algorithm the
// engine applies when more than one is applicable. Sets are ephemeral: one
// is assembled per evaluation and handed to the engine.
type Set struct {
	Algorithm Algorithm
	Documents []*Document
}

// Names returns the document names in set order.
func (s *Set) Names() []string {
	names := make([]string, len(s.Documents))
	for i, d := range s.Documents {
		names[i] = d.Name
	}
	return names
}
