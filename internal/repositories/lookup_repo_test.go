package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"velodrive/internal/common"
	"velodrive/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRepo_NamedSets(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLookupRepo(mock)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(categoriesSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(2), "Accessories").
			AddRow(int64(1), "Bicycles"))
	mock.ExpectQuery(regexp.QuoteMeta(suppliersSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(regexp.QuoteMeta(manufacturersSQL)).
		WillReturnError(errors.New("timeout"))

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.LookupItem{{ID: 2, Name: "Accessories"}, {ID: 1, Name: "Bicycles"}}, categories)

	suppliers, err := repo.Suppliers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, suppliers)
	assert.Empty(t, suppliers)

	_, err = repo.Manufacturers(ctx)
	assert.ErrorContains(t, err, "failed to load manufacturers")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupRepo_OrderSets(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLookupRepo(mock)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(statusesSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("Completed").AddRow("New"))
	mock.ExpectQuery(regexp.QuoteMeta(pickupPointsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "label"}).AddRow(int64(1), "420151, Kazan, Lesnaya, 5"))
	mock.ExpectQuery(regexp.QuoteMeta(usersSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name"}).AddRow(int64(3), "Anna Smirnova"))

	statuses, err := repo.Statuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Completed", "New"}, statuses)

	points, err := repo.PickupPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PickupPointLookupItem{{ID: 1, Label: "420151, Kazan, Lesnaya, 5"}}, points)

	users, err := repo.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.UserLookupItem{{ID: 3, FullName: "Anna Smirnova"}}, users)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	columns := []string{"id", "full_name", "login", "password_plain", "role_code", "role_name"}

	mock.ExpectQuery(regexp.QuoteMeta(userSelectSQL + `WHERE u.login = $1 LIMIT 1`)).
		WithArgs("manager@velodrive.test").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(2), "Oleg Sidorov", "manager@velodrive.test", "secret", "manager", "Manager"))
	mock.ExpectQuery(regexp.QuoteMeta(userSelectSQL + `WHERE u.login = $1 LIMIT 1`)).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.GetByLogin(context.Background(), "manager@velodrive.test")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, models.RoleManager, user.Role())

	_, err = repo.GetByLogin(context.Background(), "ghost")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
