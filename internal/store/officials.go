// Package store is the read path over the officials relation. Every query
// shape the search pipeline needs is a named method here; the pipeline never
// sees SQL.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"civic-qa/internal/common/logger"
	"civic-qa/internal/models"
)

const officialColumns = `id, name, office, level, district_type, district_number, district_area,
	email, phone, website, social_media, party, term_start, next_election, salary,
	bio_summary, education, career_before_office, key_policy_areas, committee_memberships,
	recent_major_vote, recent_initiative, campaign_promises, responsiveness_score,
	town_halls_per_year, office_hours`

const schemaDDL = `
CREATE TABLE IF NOT EXISTS officials (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	office TEXT NOT NULL,
	level TEXT,
	district_type TEXT,
	district_number TEXT,
	district_area TEXT,
	email TEXT,
	phone TEXT,
	website TEXT,
	social_media TEXT,
	party TEXT,
	term_start TEXT,
	next_election TEXT,
	salary BIGINT,
	bio_summary TEXT,
	education TEXT,
	career_before_office TEXT,
	key_policy_areas TEXT,
	committee_memberships TEXT,
	recent_major_vote TEXT,
	recent_initiative TEXT,
	campaign_promises TEXT,
	responsiveness_score TEXT,
	town_halls_per_year TEXT,
	office_hours TEXT
)`

// Repository provides officials lookups over a SQL database.
type Repository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// EnsureSchema creates the officials relation if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create officials table: %w", err)
	}
	return nil
}

// Count returns the number of officials rows.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM officials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count officials: %w", err)
	}
	return n, nil
}

// ByPartyContains returns officials whose party field contains the given
// label, case-insensitive.
func (r *Repository) ByPartyContains(ctx context.Context, party string) ([]models.Official, error) {
	query := fmt.Sprintf(`SELECT %s FROM officials WHERE LOWER(party) LIKE '%%' || LOWER($1) || '%%'`, officialColumns)
	return r.queryOfficials(ctx, query, party)
}

// ByDistrict returns officials whose district type is exactly "District" and
// whose district number equals the given digits.
func (r *Repository) ByDistrict(ctx context.Context, number string) ([]models.Official, error) {
	query := fmt.Sprintf(`SELECT %s FROM officials WHERE district_type = 'District' AND district_number = $1`, officialColumns)
	return r.queryOfficials(ctx, query, number)
}

// ByNameAndOffices returns at most one official matching the exact name, one
// of the given offices (when non-empty), and the given level (when set).
func (r *Repository) ByNameAndOffices(ctx context.Context, name string, offices []string, level string) ([]models.Official, error) {
	query := fmt.Sprintf(`SELECT %s FROM officials WHERE name = $1`, officialColumns)
	args := []interface{}{name}

	if len(offices) > 0 {
		placeholders := ""
		for i, office := range offices {
			if i > 0 {
				placeholders += ","
			}
			placeholders += fmt.Sprintf("$%d", len(args)+1)
			args = append(args, office)
		}
		query += fmt.Sprintf(" AND office IN (%s)", placeholders)
	}
	if level != "" {
		query += fmt.Sprintf(" AND level = $%d", len(args)+1)
		args = append(args, level)
	}
	query += " LIMIT 1"

	return r.queryOfficials(ctx, query, args...)
}

// ByOfficeContains returns officials whose office field contains the term,
// case-insensitive. requireSalary additionally filters to rows with a
// non-null salary.
func (r *Repository) ByOfficeContains(ctx context.Context, term string, requireSalary bool) ([]models.Official, error) {
	query := fmt.Sprintf(`SELECT %s FROM officials WHERE LOWER(office) LIKE '%%' || LOWER($1) || '%%'`, officialColumns)
	if requireSalary {
		query += " AND salary IS NOT NULL"
	}
	return r.queryOfficials(ctx, query, term)
}

// ByNameContains is ByOfficeContains over the name field.
func (r *Repository) ByNameContains(ctx context.Context, term string, requireSalary bool) ([]models.Official, error) {
	query := fmt.Sprintf(`SELECT %s FROM officials WHERE LOWER(name) LIKE '%%' || LOWER($1) || '%%'`, officialColumns)
	if requireSalary {
		query += " AND salary IS NOT NULL"
	}
	return r.queryOfficials(ctx, query, term)
}

// ByAnyField matches the term against name, office, or level.
func (r *Repository) ByAnyField(ctx context.Context, term string, requireSalary bool) ([]models.Official, error) {
	query := fmt.Sprintf(`SELECT %s FROM officials
		WHERE (LOWER(name) LIKE '%%' || LOWER($1) || '%%'
		OR LOWER(office) LIKE '%%' || LOWER($1) || '%%'
		OR LOWER(level) LIKE '%%' || LOWER($1) || '%%')`, officialColumns)
	if requireSalary {
		query += " AND salary IS NOT NULL"
	}
	return r.queryOfficials(ctx, query, term)
}

func (r *Repository) queryOfficials(ctx context.Context, query string, args ...interface{}) ([]models.Official, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query officials: %w", err)
	}
	defer rows.Close()

	var out []models.Official
	for rows.Next() {
		o, err := scanOfficial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan official: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate officials: %w", err)
	}
	return out, nil
}

func scanOfficial(rows *sql.Rows) (models.Official, error) {
	var o models.Official
	err := rows.Scan(
		&o.ID, &o.Name, &o.Office, &o.Level, &o.DistrictType, &o.DistrictNumber,
		&o.DistrictArea, &o.Email, &o.Phone, &o.Website, &o.SocialMedia, &o.Party,
		&o.TermStart, &o.NextElection, &o.Salary, &o.BioSummary, &o.Education,
		&o.CareerBeforeOffice, &o.KeyPolicyAreas, &o.CommitteeMembership,
		&o.RecentMajorVote, &o.RecentInitiative, &o.CampaignPromises,
		&o.ResponsivenessScore, &o.TownHallsPerYear, &o.OfficeHours,
	)
	return o, err
}
