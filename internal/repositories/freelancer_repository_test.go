package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestFindForMatchingSkillFilter(t *testing.T) {
	t.Run("criteria skills are matched case-insensitively", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		repo := NewFreelancerRepository(gormDB)

		// Both the count and the fetch must lowercase the requested skills
		// and compare against lowercased column elements.
		mock.ExpectQuery(`SELECT count\(\*\) FROM "freelancer_profiles" WHERE EXISTS \(SELECT 1 FROM unnest\(skills\) AS skill WHERE LOWER\(skill\) = ANY\(\$1\)\)`).
			WithArgs(pq.StringArray{"kubernetes", "go"}).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT \* FROM "freelancer_profiles" WHERE EXISTS \(SELECT 1 FROM unnest\(skills\) AS skill WHERE LOWER\(skill\) = ANY\(\$1\)\)`).
			WithArgs(pq.StringArray{"kubernetes", "go"}, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "skills"}).
				AddRow("f-1", "u-1", "Ada", `{"Kubernetes"}`))

		mock.ExpectQuery(`SELECT \* FROM "compliance_records"`).
			WithArgs("f-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "freelancer_id", "type"}))

		profiles, total, err := repo.FindForMatching(MatchingPoolCriteria{
			Skills: []string{"Kubernetes", "GO"},
			Limit:  10,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), total)
		require.Len(t, profiles, 1)
		assert.Equal(t, "f-1", profiles[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no skills means no skill clause", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		repo := NewFreelancerRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "freelancer_profiles" WHERE is_available_for_work = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(`SELECT \* FROM "freelancer_profiles" WHERE is_available_for_work = \$1`).
			WithArgs(true, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		profiles, total, err := repo.FindForMatching(MatchingPoolCriteria{
			OnlyAvailable: true,
			Limit:         5,
		})
		require.NoError(t, err)

		assert.Zero(t, total)
		assert.Empty(t, profiles)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLowerAll(t *testing.T) {
	assert.Equal(t, []string{"go", "kubernetes"}, lowerAll([]string{"Go", "KUBERNETES"}))
	assert.Empty(t, lowerAll(nil))
}
