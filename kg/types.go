// Package kg extracts entities and relationships from text and maintains
// them in a Neo4j knowledge graph, providing structured graph context for
// answer synthesis.
package kg

import "strings"

// Entity types recognised by the extractor. Anything else normalises to
// TypeConcept.
const (
	TypePerson       = "PERSON"
	TypeOrganization = "ORGANIZATION"
	TypeLocation     = "LOCATION"
	TypeTechnology   = "TECHNOLOGY"
	TypeConcept      = "CONCEPT"
	TypeEvent        = "EVENT"
	TypeProduct      = "PRODUCT"
	TypeDate         = "DATE"
)

var knownTypes = map[string]bool{
	TypePerson:       true,
	TypeOrganization: true,
	TypeLocation:     true,
	TypeTechnology:   true,
	TypeConcept:      true,
	TypeEvent:        true,
	TypeProduct:      true,
	TypeDate:         true,
}

// EntityTypes lists the recognised entity types in a stable order.
func EntityTypes() []string {
	return []string{
		TypePerson, TypeOrganization, TypeLocation, TypeTechnology,
		TypeConcept, TypeEvent, TypeProduct, TypeDate,
	}
}

// NormalizeType upper-cases a type label and maps unrecognised labels to
// TypeConcept.
func NormalizeType(label string) string {
	upper := strings.ToUpper(strings.TrimSpace(label))
	if knownTypes[upper] {
		return upper
	}
	return TypeConcept
}

// Entity is a named entity extracted from text.
type Entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Relationship is a directed, typed edge between two entities.
type Relationship struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Type        string `json:"relationship"`
	Description string `json:"description,omitempty"`
}

// NormalizeRelType upper-cases a relationship label and joins words with
// underscores, e.g. "works at" becomes "WORKS_AT".
func NormalizeRelType(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "RELATED_TO"
	}
	return strings.ReplaceAll(strings.ToUpper(label), " ", "_")
}
