package models

import "database/sql"

// Official is one elected-official row. Name and Office are always present;
// every other column is nullable so that "no data" stays distinguishable
// from an empty string when rendering "I don't have this information".
type Official struct {
	ID                  int64          `json:"id" db:"id"`
	Name                string         `json:"name" db:"name"`
	Office              string         `json:"office" db:"office"`
	Level               sql.NullString `json:"level" db:"level"` // municipal, state, federal
	DistrictType        sql.NullString `json:"districtType" db:"district_type"`
	DistrictNumber      sql.NullString `json:"districtNumber" db:"district_number"`
	DistrictArea        sql.NullString `json:"districtArea" db:"district_area"`
	Email               sql.NullString `json:"email" db:"email"`
	Phone               sql.NullString `json:"phone" db:"phone"`
	Website             sql.NullString `json:"website" db:"website"`
	SocialMedia         sql.NullString `json:"socialMedia" db:"social_media"`
	Party               sql.NullString `json:"party" db:"party"`
	TermStart           sql.NullString `json:"termStart" db:"term_start"`
	NextElection        sql.NullString `json:"nextElection" db:"next_election"`
	Salary              sql.NullInt64  `json:"salary" db:"salary"`
	BioSummary          sql.NullString `json:"bioSummary" db:"bio_summary"`
	Education           sql.NullString `json:"education" db:"education"`
	CareerBeforeOffice  sql.NullString `json:"careerBeforeOffice" db:"career_before_office"`
	KeyPolicyAreas      sql.NullString `json:"keyPolicyAreas" db:"key_policy_areas"`
	CommitteeMembership sql.NullString `json:"committeeMemberships" db:"committee_memberships"`
	RecentMajorVote     sql.NullString `json:"recentMajorVote" db:"recent_major_vote"`
	RecentInitiative    sql.NullString `json:"recentInitiative" db:"recent_initiative"`
	CampaignPromises    sql.NullString `json:"campaignPromises" db:"campaign_promises"`
	ResponsivenessScore sql.NullString `json:"responsivenessScore" db:"responsiveness_score"`
	TownHallsPerYear    sql.NullString `json:"townHallsPerYear" db:"town_halls_per_year"`
	OfficeHours         sql.NullString `json:"officeHours" db:"office_hours"`
}

// Has reports whether an optional text field carries real data.
func Has(s sql.NullString) bool {
	return s.Valid && s.String != ""
}

// DistrictLabel returns a human-readable scope: "District 4", the area name
// for at-large seats, or "" when the row has no scope data.
func (o Official) DistrictLabel() string {
	if Has(o.DistrictType) && o.DistrictType.String == "District" && Has(o.DistrictNumber) {
		return "District " + o.DistrictNumber.String
	}
	if Has(o.DistrictArea) {
		return o.DistrictArea.String
	}
	return ""
}
