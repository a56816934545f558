package pipeline

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"civic-qa/internal/models"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func fullOfficial() models.Official {
	return models.Official{
		Name:               "Michelle Wu",
		Office:             "Mayor",
		Level:              ns("municipal"),
		DistrictArea:       ns("Boston"),
		Email:              ns("mayor@boston.gov"),
		Phone:              ns("617-635-4500"),
		Website:            ns("https://www.boston.gov/departments/mayors-office"),
		Party:              ns("Democrat"),
		TermStart:          ns("2021-11-16"),
		NextElection:       ns("2025-11-04"),
		Salary:             sql.NullInt64{Int64: 207000, Valid: true},
		BioSummary:         ns("First woman elected mayor of Boston."),
		Education:          ns("Harvard College, Harvard Law School"),
		CareerBeforeOffice: ns("City councilor at-large"),
		KeyPolicyAreas:     ns("housing, climate, transportation"),
	}
}

func fixedResponder(now string) *Responder {
	r := NewResponder()
	t, _ := time.Parse("2006-01-02", now)
	r.now = func() time.Time { return t }
	return r
}

func TestRenderNotFoundIncludesQuery(t *testing.T) {
	r := NewResponder()

	out := r.Render(Result{}, models.Intent{}, "asdf")
	assert.Contains(t, out, `"asdf"`)
}

func TestRenderNoPartyMarker(t *testing.T) {
	r := NewResponder()

	out := r.Render(Result{Marker: MarkerNoPartyOfficials}, models.Intent{}, "republicans")
	assert.Contains(t, out, "nonpartisan")
	assert.NotContains(t, out, "republicans")
}

func TestRenderSingleIntentTemplates(t *testing.T) {
	r := fixedResponder("2024-01-01")
	o := fullOfficial()

	tests := []struct {
		target models.TargetInfo
		want   string
	}{
		{models.TargetEducation, "Harvard College"},
		{models.TargetCareer, "City councilor at-large"},
		{models.TargetPolicy, "housing, climate, transportation"},
		{models.TargetSalary, "$207,000"},
		{models.TargetContact, "mayor@boston.gov"},
		{models.TargetParty, "Democrat"},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			intent := models.Intent{TargetInfo: []models.TargetInfo{tt.target}}
			out := r.Render(Result{Officials: []models.Official{o}}, intent, "q")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Michelle Wu")
		})
	}
}

func TestRenderIntentCheckOrderPrefersEducation(t *testing.T) {
	r := NewResponder()
	o := fullOfficial()

	intent := models.Intent{TargetInfo: []models.TargetInfo{models.TargetSalary, models.TargetEducation}}
	out := r.Render(Result{Officials: []models.Official{o}}, intent, "q")
	assert.Contains(t, out, "Harvard College")
	assert.NotContains(t, out, "$207,000")
}

func TestRenderMissingFieldSaysSo(t *testing.T) {
	r := NewResponder()
	o := models.Official{Name: "Ed Flynn", Office: "City Councilor"}

	intent := models.Intent{TargetInfo: []models.TargetInfo{models.TargetEducation}}
	out := r.Render(Result{Officials: []models.Official{o}}, intent, "q")
	assert.Equal(t, "I don't have education information for Ed Flynn.", out)
}

func TestRenderBasicSummary(t *testing.T) {
	r := NewResponder()

	out := r.Render(Result{Officials: []models.Official{fullOfficial()}}, models.Intent{DetailLevel: models.DetailBasic}, "q")
	assert.Contains(t, out, "Michelle Wu is the Mayor")
	assert.Contains(t, out, "Democrat")
}

func TestRenderDetailedBlockOmitsAbsentFields(t *testing.T) {
	r := fixedResponder("2024-01-01")
	o := fullOfficial()
	o.CommitteeMembership = sql.NullString{}
	o.RecentMajorVote = sql.NullString{}

	out := r.Render(Result{Officials: []models.Official{o}}, models.Intent{DetailLevel: models.DetailDetailed}, "q")
	assert.Contains(t, out, "Bio: First woman elected mayor of Boston.")
	assert.Contains(t, out, "Education: Harvard College, Harvard Law School")
	assert.Contains(t, out, "Salary: $207,000")
	assert.NotContains(t, out, "Committees")
	assert.NotContains(t, out, "Recent major vote")
}

func TestRenderMultipleOfficialsList(t *testing.T) {
	r := NewResponder()
	officials := []models.Official{
		fullOfficial(),
		{Name: "Ed Flynn", Office: "City Councilor", DistrictType: ns("District"), DistrictNumber: ns("2")},
	}

	out := r.Render(Result{Officials: officials}, models.Intent{}, "q")
	assert.Contains(t, out, "I found 2 officials")
	assert.Contains(t, out, "1. Michelle Wu, Mayor")
	assert.Contains(t, out, "2. Ed Flynn, City Councilor")
	assert.Contains(t, out, "District 2")
}

func TestRenderListCapped(t *testing.T) {
	r := NewResponder()
	officials := make([]models.Official, listRenderCap+10)
	for i := range officials {
		officials[i] = models.Official{Name: "Alex Example", Office: "Clerk"}
	}

	out := r.Render(Result{Officials: officials}, models.Intent{}, "q")
	assert.Contains(t, out, "...and 10 more.")
}

func TestTenureComputation(t *testing.T) {
	tests := []struct {
		name  string
		now   string
		start string
		want  string
	}{
		{"400 days is a year and a month", "2024-02-14", "2023-01-10", "1 year and 1 month"},
		{"364 days stays in months", "2024-01-10", "2023-01-11", "12 months"},
		{"365 days is one year", "2024-01-10", "2023-01-10", "1 year"},
		{"370 days is just one year", "2024-01-15", "2023-01-10", "1 year"},
		{"two months", "2023-03-15", "2023-01-10", "2 months"},
		{"twelve days", "2023-01-22", "2023-01-10", "12 days"},
		{"multi year", "2026-01-25", "2023-01-10", "3 years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fixedResponder(tt.now)
			assert.Equal(t, tt.want, r.tenure(ns(tt.start)))
		})
	}
}

func TestTenureUnknownForBadDates(t *testing.T) {
	r := NewResponder()

	assert.Equal(t, unknownDuration, r.tenure(sql.NullString{}))
	assert.Equal(t, unknownDuration, r.tenure(ns("")))
	assert.Equal(t, unknownDuration, r.tenure(ns("sometime in 2021")))
	assert.Equal(t, unknownDuration, r.tenure(ns("2999-01-01")))
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$207,000", formatDollars(207000))
	assert.Equal(t, "$950", formatDollars(950))
	assert.Equal(t, "$1,250,500", formatDollars(1250500))
}
