// Package lexicon holds the hand-authored lookup tables the query pipeline
// runs on: spelling-variant tables, pronoun allow-lists, intent keyword
// groups, and the priority rules for "the" office-holder questions. The
// tables are data, not behavior; they load once at process start so the
// decision logic stays testable with a custom document.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	apperrors "civic-qa/internal/common/errors"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

//go:embed schema.json
var lexiconSchemaJSON []byte

// VariantEntry maps one canonical label to its known spellings. Entry order
// in the document is significant: normalization returns the first entry
// whose variant clears the threshold.
type VariantEntry struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// KeywordGroup binds an intent target to its trigger keywords. Groups are
// scanned in document order.
type KeywordGroup struct {
	Target   string   `yaml:"target"`
	Keywords []string `yaml:"keywords"`
}

// OfficeKeyword maps a query token to the canonical office word.
type OfficeKeyword struct {
	Term      string `yaml:"term"`
	Canonical string `yaml:"canonical"`
}

// PartyGroup binds a stored party label to the query keywords that select it.
type PartyGroup struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// PriorityRule resolves "the <office>" questions for a specific intent to a
// named current holder. Turnover is a document edit, not a code change.
type PriorityRule struct {
	Target  string   `yaml:"target"`
	Term    string   `yaml:"term"`
	Name    string   `yaml:"name"`
	Offices []string `yaml:"offices"`
	Level   string   `yaml:"level"`
}

// Pronouns holds the closed-vocabulary coreference lists.
type Pronouns struct {
	FemaleOfficials []string `yaml:"female_officials"`
	DefaultFemale   string   `yaml:"default_female"`
	MaleOfficials   []string `yaml:"male_officials"`
	DefaultGovernor string   `yaml:"default_governor"`
}

// Detail holds the verbosity-classification phrase sets.
type Detail struct {
	DetailedPhrases []string `yaml:"detailed_phrases"`
	BasicPhrases    []string `yaml:"basic_phrases"`
}

// Lexicon is the full lookup-table document.
type Lexicon struct {
	Neighborhoods  []VariantEntry  `yaml:"neighborhoods"`
	Offices        []VariantEntry  `yaml:"offices"`
	Pronouns       Pronouns        `yaml:"pronouns"`
	IntentGroups   []KeywordGroup  `yaml:"intent_groups"`
	Detail         Detail          `yaml:"detail"`
	OfficeKeywords []OfficeKeyword `yaml:"office_keywords"`
	StopPhrases    []string        `yaml:"stop_phrases"`
	Parties        []PartyGroup    `yaml:"parties"`
	Concepts       []string        `yaml:"concepts"`
	PriorityRules  []PriorityRule  `yaml:"priority_rules"`
}

var (
	defaultLexicon *Lexicon
	defaultOnce    sync.Once
	defaultErr     error
)

// Default loads and caches the embedded lexicon document.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLexicon, defaultErr = Parse(defaultLexiconYAML)
	})
	return defaultLexicon, defaultErr
}

// LoadFile loads a lexicon override from disk.
func LoadFile(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates and decodes a lexicon document.
func Parse(raw []byte) (*Lexicon, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon yaml: %w", err)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	return &lex, nil
}

func validateDocument(doc map[string]interface{}) error {
	schemaLoader := gojsonschema.NewBytesLoader(lexiconSchemaJSON)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("lexicon validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewLexiconInvalidError(fmt.Sprintf("%v", errs))
	}

	return nil
}
