package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"civic-qa/internal/models"
)

func TestClassifyDetailLevel(t *testing.T) {
	a := NewAnalyzer(testLexicon(t))

	tests := []struct {
		query string
		want  models.DetailLevel
	}{
		{"tell me about the mayor", models.DetailDetailed},
		{"what is the governor's salary", models.DetailDetailed},
		{"who is the mayor", models.DetailBasic},
		{"mayor", models.DetailBasic},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Classify(tt.query).DetailLevel)
		})
	}
}

func TestClassifyTargetInfo(t *testing.T) {
	a := NewAnalyzer(testLexicon(t))

	tests := []struct {
		query string
		want  []models.TargetInfo
	}{
		{"how much does the mayor make", []models.TargetInfo{models.TargetSalary}},
		{"how long has she been in office", []models.TargetInfo{models.TargetTimeInOffice}},
		{"how do I contact my councilor", []models.TargetInfo{models.TargetContact}},
		{"what party is the senator", []models.TargetInfo{models.TargetParty}},
		{"where did the governor go to school", []models.TargetInfo{models.TargetEducation}},
		{"what was her career before office", []models.TargetInfo{models.TargetCareer}},
		{"what does the mayor focus on", []models.TargetInfo{models.TargetPolicy}},
		{"who is the mayor", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Classify(tt.query).TargetInfo)
		})
	}
}

func TestClassifyMultipleTargetsKeepGroupOrder(t *testing.T) {
	a := NewAnalyzer(testLexicon(t))

	// "education" appears before "salary" in the text, but the salary group
	// is scanned first.
	intent := a.Classify("education and salary of the mayor")
	assert.Equal(t, []models.TargetInfo{models.TargetSalary, models.TargetEducation}, intent.TargetInfo)
}

func TestClassifyUnknownIntentIsGeneralBasic(t *testing.T) {
	a := NewAnalyzer(testLexicon(t))

	intent := a.Classify("zebra quantum")
	assert.Equal(t, models.DetailBasic, intent.DetailLevel)
	assert.Empty(t, intent.TargetInfo)
	assert.Equal(t, "general", intent.Primary())
}
