package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPeople(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("I emailed Michelle Wu and Ed Flynn about the budget")
	assert.Equal(t, []string{"Michelle Wu", "Ed Flynn"}, ents.People)
}

func TestExtractPeopleIgnoresSingleCapitalizedWords(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("Boston is a city")
	assert.Empty(t, ents.People)
}

func TestExtractDistricts(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("who represents District 4 and district 7")
	assert.Equal(t, []string{"district 4", "district 7"}, ents.Districts)
}

func TestExtractOfficesInOccurrenceOrder(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("does the governor outrank the mayor")
	assert.Equal(t, []string{"governor", "mayor"}, ents.Offices)
}

func TestExtractOfficesCanonicalizesSpelling(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("my city councillor")
	assert.Equal(t, []string{"councilor"}, ents.Offices)
}

func TestExtractPartiesAndConcepts(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("which democrats care about housing and climate")
	assert.Equal(t, []string{"Democrat"}, ents.Parties)
	assert.Equal(t, []string{"housing", "climate"}, ents.Concepts)
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor(testLexicon(t))

	ents := e.Extract("")
	assert.Empty(t, ents.People)
	assert.Empty(t, ents.Offices)
	assert.Empty(t, ents.Districts)
	assert.Empty(t, ents.Parties)
	assert.Empty(t, ents.Concepts)
}
