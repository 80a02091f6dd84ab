package kg

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

const (
	extractTextLimit  = 3000
	relationTextLimit = 2000
	relationMaxInput  = 20
)

const extractPrompt = `Extract named entities from the following text. For each entity provide:
- name: the entity name as it appears in the text
- type: one of %s
- description: a brief description (1 sentence max)

Return ONLY a JSON array of objects. No explanation.

Text:
%s

JSON:`

const relationPrompt = `Given the following entities and source text, identify meaningful relationships between the entities.

Entities:
%s

Text:
%s

For each relationship provide:
- source: entity name
- target: entity name
- relationship: relationship type in UPPER_SNAKE_CASE (e.g. WORKS_AT, PART_OF, CREATED_BY)
- description: one-sentence description

Return ONLY a JSON array. No explanation.

JSON:`

var (
	jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
	titleCasePattern = regexp.MustCompile(`\b(?:[A-Z][a-z]+\s){1,3}[A-Z][a-z]+\b`)
)

// Extractor pulls entities and relationships out of raw text with an LLM,
// degrading to a heuristic when the model cannot be used.
type Extractor struct {
	client llm.Client
	logger log.Logger
}

// NewExtractor creates an extractor backed by the given LLM client.
func NewExtractor(client llm.Client, opts ...ExtractorOption) *Extractor {
	e := &Extractor{client: client, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractorOption customises an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger overrides the package default logger.
func WithExtractorLogger(logger log.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = logger }
}

// Extract returns the entities found in text. Extraction never fails: when
// the LLM is unavailable or returns garbage, a capitalised-phrase heuristic
// supplies CONCEPT entities instead.
func (e *Extractor) Extract(ctx context.Context, text string) []Entity {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	snippet := truncateText(text, extractTextLimit)

	entities, err := e.llmExtract(ctx, snippet)
	if err != nil {
		e.logger.Warn("LLM entity extraction failed (%v); using fallback", err)
		return regexExtract(snippet)
	}
	return entities
}

func (e *Extractor) llmExtract(ctx context.Context, text string) ([]Entity, error) {
	if e.client == nil || !e.client.IsAvailable() {
		return nil, llm.ErrUnavailable
	}

	prompt := fmt.Sprintf(extractPrompt, strings.Join(EntityTypes(), ", "), text)
	raw, err := e.client.Generate(ctx, prompt, llm.DefaultMaxTokens)
	if err != nil {
		return nil, err
	}

	payload := jsonArrayPattern.FindString(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array found in LLM response")
	}

	var parsed []struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("decoding entity array: %w", err)
	}

	seen := make(map[string]bool)
	entities := make([]Entity, 0, len(parsed))
	for _, item := range parsed {
		name := strings.TrimSpace(item.Name)
		if name == "" || strings.TrimSpace(item.Type) == "" {
			continue
		}
		entityType := NormalizeType(item.Type)
		key := name + "|" + entityType
		if seen[key] {
			continue
		}
		seen[key] = true
		entities = append(entities, Entity{
			Name:        name,
			Type:        entityType,
			Description: item.Description,
		})
	}
	e.logger.Info("LLM extracted %d entities", len(entities))
	return entities, nil
}

// regexExtract pulls consecutive Title-Case word runs as CONCEPT entities.
func regexExtract(text string) []Entity {
	matches := titleCasePattern.FindAllString(text, -1)
	seen := make(map[string]bool)
	var entities []Entity
	for _, match := range matches {
		name := strings.TrimSpace(match)
		if seen[name] {
			continue
		}
		seen[name] = true
		entities = append(entities, Entity{Name: name, Type: TypeConcept})
	}
	return entities
}

// ExtractRelationships infers typed relationships among entities using the
// source text. Fewer than two entities yields no relationships. There is no
// heuristic fallback; LLM failure returns an empty slice.
func (e *Extractor) ExtractRelationships(ctx context.Context, text string, entities []Entity) []Relationship {
	if len(entities) < 2 {
		return nil
	}

	rels, err := e.llmRelationships(ctx, text, entities)
	if err != nil {
		e.logger.Warn("LLM relationship building failed (%v)", err)
		return nil
	}
	return rels
}

func (e *Extractor) llmRelationships(ctx context.Context, text string, entities []Entity) ([]Relationship, error) {
	if e.client == nil || !e.client.IsAvailable() {
		return nil, llm.ErrUnavailable
	}

	input := entities
	if len(input) > relationMaxInput {
		input = input[:relationMaxInput]
	}
	summary := make([]map[string]string, len(input))
	for i, ent := range input {
		summary[i] = map[string]string{"name": ent.Name, "type": ent.Type}
	}
	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding entity summary: %w", err)
	}

	prompt := fmt.Sprintf(relationPrompt, encoded, truncateText(text, relationTextLimit))
	raw, err := e.client.Generate(ctx, prompt, llm.DefaultMaxTokens)
	if err != nil {
		return nil, err
	}

	payload := jsonArrayPattern.FindString(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array found in LLM response")
	}

	var parsed []struct {
		Source       string `json:"source"`
		Target       string `json:"target"`
		Relationship string `json:"relationship"`
		Description  string `json:"description"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("decoding relationship array: %w", err)
	}

	rels := make([]Relationship, 0, len(parsed))
	for _, item := range parsed {
		source := strings.TrimSpace(item.Source)
		target := strings.TrimSpace(item.Target)
		if source == "" || target == "" || source == target {
			continue
		}
		rels = append(rels, Relationship{
			Source:      source,
			Target:      target,
			Type:        NormalizeRelType(item.Relationship),
			Description: item.Description,
		})
	}
	e.logger.Info("LLM built %d relationships", len(rels))
	return rels, nil
}

func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
