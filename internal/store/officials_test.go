package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civic-qa/internal/common/logger"
)

var officialRows = []string{
	"id", "name", "office", "level", "district_type", "district_number", "district_area",
	"email", "phone", "website", "social_media", "party", "term_start", "next_election",
	"salary", "bio_summary", "education", "career_before_office", "key_policy_areas",
	"committee_memberships", "recent_major_vote", "recent_initiative", "campaign_promises",
	"responsiveness_score", "town_halls_per_year", "office_hours",
}

func officialRow(rows *sqlmock.Rows, id int64, name, office string) *sqlmock.Rows {
	return rows.AddRow(id, name, office, "municipal", nil, nil, nil,
		nil, nil, nil, nil, "Democrat", "2021-11-16", "2025-11-04",
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
}

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db, logger.NewTestLogger(t)), mock
}

func TestByOfficeContains(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows(officialRows)
	officialRow(rows, 1, "Michelle Wu", "Mayor")
	mock.ExpectQuery(`LOWER\(office\) LIKE`).
		WithArgs("mayor").
		WillReturnRows(rows)

	got, err := repo.ByOfficeContains(context.Background(), "mayor", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Michelle Wu", got[0].Name)
	assert.Equal(t, "Mayor", got[0].Office)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByOfficeContainsSalaryFilter(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`LOWER\(office\) LIKE .+ AND salary IS NOT NULL`).
		WithArgs("councilor").
		WillReturnRows(sqlmock.NewRows(officialRows))

	got, err := repo.ByOfficeContains(context.Background(), "councilor", true)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByDistrictExactMatch(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows(officialRows)
	officialRow(rows, 7, "Brian Worrell", "City Councilor")
	mock.ExpectQuery(`district_type = 'District' AND district_number = \$1`).
		WithArgs("4").
		WillReturnRows(rows)

	got, err := repo.ByDistrict(context.Background(), "4")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Brian Worrell", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByNameAndOfficesBuildsFilters(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows(officialRows)
	officialRow(rows, 2, "Maura Healey", "Governor")
	mock.ExpectQuery(`name = \$1 AND office IN \(\$2\) AND level = \$3 LIMIT 1`).
		WithArgs("Maura Healey", "Governor", "state").
		WillReturnRows(rows)

	got, err := repo.ByNameAndOffices(context.Background(), "Maura Healey", []string{"Governor"}, "state")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Maura Healey", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByNameAndOfficesNameOnly(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`name = \$1 LIMIT 1`).
		WithArgs("Ed Markey").
		WillReturnRows(sqlmock.NewRows(officialRows))

	got, err := repo.ByNameAndOffices(context.Background(), "Ed Markey", nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByAnyFieldSearchesThreeColumns(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows(officialRows)
	officialRow(rows, 3, "Ed Markey", "US Senator")
	mock.ExpectQuery(`LOWER\(name\) LIKE .+ OR LOWER\(office\) LIKE .+ OR LOWER\(level\) LIKE`).
		WithArgs("federal").
		WillReturnRows(rows)

	got, err := repo.ByAnyField(context.Background(), "federal", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByPartyContains(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`LOWER\(party\) LIKE`).
		WithArgs("Republican").
		WillReturnRows(sqlmock.NewRows(officialRows))

	got, err := repo.ByPartyContains(context.Background(), "Republican")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM officials`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, n)
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS officials`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
