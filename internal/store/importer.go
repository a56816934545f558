package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"civic-qa/internal/common/errors"
	"civic-qa/internal/models"
)

const insertOfficialSQL = `INSERT INTO officials (
	name, office, level, district_type, district_number, district_area,
	email, phone, website, social_media, party, term_start, next_election, salary,
	bio_summary, education, career_before_office, key_policy_areas, committee_memberships,
	recent_major_vote, recent_initiative, campaign_promises, responsiveness_score,
	town_halls_per_year, office_hours
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	$17, $18, $19, $20, $21, $22, $23, $24, $25)`

// InsertOfficial writes one official row.
func (r *Repository) InsertOfficial(ctx context.Context, o models.Official) error {
	_, err := r.db.ExecContext(ctx, insertOfficialSQL,
		o.Name, o.Office, o.Level, o.DistrictType, o.DistrictNumber, o.DistrictArea,
		o.Email, o.Phone, o.Website, o.SocialMedia, o.Party, o.TermStart,
		o.NextElection, o.Salary, o.BioSummary, o.Education, o.CareerBeforeOffice,
		o.KeyPolicyAreas, o.CommitteeMembership, o.RecentMajorVote, o.RecentInitiative,
		o.CampaignPromises, o.ResponsivenessScore, o.TownHallsPerYear, o.OfficeHours,
	)
	if err != nil {
		return fmt.Errorf("insert official %q: %w", o.Name, err)
	}
	return nil
}

// ImportCSV loads officials from a CSV file into an empty table. The import
// is idempotent: if the table already has rows, nothing is read or written
// and the existing count is returned with imported=0.
func (r *Repository) ImportCSV(ctx context.Context, path string) (imported int, existing int, err error) {
	existing, err = r.Count(ctx)
	if err != nil {
		return 0, 0, errors.NewImportFailedError(err)
	}
	if existing > 0 {
		r.logger.Info("officials table already populated, skipping import",
			map[string]interface{}{"existing": existing})
		return 0, existing, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.NewImportSourceBrokenError(fmt.Sprintf("%s: %v", path, err))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, 0, errors.NewImportSourceBrokenError(fmt.Sprintf("%s: %v", path, err))
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"name", "office"} {
		if _, ok := cols[required]; !ok {
			return 0, 0, errors.NewImportSourceBrokenError(
				fmt.Sprintf("%s: missing required column %q", path, required))
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, 0, errors.NewImportSourceBrokenError(fmt.Sprintf("%s: %v", path, err))
		}

		o, err := officialFromRecord(cols, record)
		if err != nil {
			r.logger.Warn("skipping malformed officials row",
				map[string]interface{}{"row": imported + 1, "error": err.Error()})
			continue
		}
		if err := r.InsertOfficial(ctx, o); err != nil {
			return imported, 0, errors.NewImportFailedError(err)
		}
		imported++
	}

	r.logger.Info("officials import complete", map[string]interface{}{"imported": imported})
	return imported, 0, nil
}

func officialFromRecord(cols map[string]int, record []string) (models.Official, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	office := field("office")
	if name == "" || office == "" {
		return models.Official{}, fmt.Errorf("name and office are required")
	}

	o := models.Official{
		Name:                name,
		Office:              office,
		Level:               nullable(field("level")),
		DistrictType:        nullable(field("district_type")),
		DistrictNumber:      nullable(field("district_number")),
		DistrictArea:        nullable(field("district_area")),
		Email:               nullable(field("email")),
		Phone:               nullable(field("phone")),
		Website:             nullable(field("website")),
		SocialMedia:         nullable(field("social_media")),
		Party:               nullable(field("party")),
		TermStart:           nullable(field("term_start")),
		NextElection:        nullable(field("next_election")),
		BioSummary:          nullable(field("bio_summary")),
		Education:           nullable(field("education")),
		CareerBeforeOffice:  nullable(field("career_before_office")),
		KeyPolicyAreas:      nullable(field("key_policy_areas")),
		CommitteeMembership: nullable(field("committee_memberships")),
		RecentMajorVote:     nullable(field("recent_major_vote")),
		RecentInitiative:    nullable(field("recent_initiative")),
		CampaignPromises:    nullable(field("campaign_promises")),
		ResponsivenessScore: nullable(field("responsiveness_score")),
		TownHallsPerYear:    nullable(field("town_halls_per_year")),
		OfficeHours:         nullable(field("office_hours")),
	}

	if raw := field("salary"); raw != "" {
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err == nil {
			o.Salary = sql.NullInt64{Int64: n, Valid: true}
		}
	}

	return o, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
