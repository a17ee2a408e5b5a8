package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type VisitRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     VisitRepository
	tenantID uuid.UUID
	context  context.Context
}

func (suite *VisitRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewVisitRepo(mock)
	suite.tenantID = uuid.New()
	suite.context = context.Background()
}

func (suite *VisitRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestVisitRepoTestSuite(t *testing.T) {
	suite.Run(t, new(VisitRepoTestSuite))
}

func (suite *VisitRepoTestSuite) visit() *models.Visit {
	return &models.Visit{
		ID:            uuid.New(),
		TenantID:      suite.tenantID,
		VisitDate:     time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Zipcode:       "97201",
		HouseholdSize: 4,
		Age0To18:      2,
		Age19To59:     1,
		Age60Plus:     1,
	}
}

func (suite *VisitRepoTestSuite) TestCreateBatch_CommitsAllRows() {
	pantry := suite.visit()
	foodTruck := suite.visit()
	foodTruck.IsFoodTruck = true

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO visits`).
		WithArgs(visitInsertArgs(pantry)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO visits`).
		WithArgs(visitInsertArgs(foodTruck)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.CreateBatch(suite.context, []*models.Visit{pantry, foodTruck})
	assert.NoError(suite.T(), err)
}

func (suite *VisitRepoTestSuite) TestCreateBatch_RollsBackOnFailure() {
	first := suite.visit()
	second := suite.visit()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO visits`).
		WithArgs(visitInsertArgs(first)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO visits`).
		WithArgs(visitInsertArgs(second)...).
		WillReturnError(errors.New("constraint violation"))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateBatch(suite.context, []*models.Visit{first, second})
	assert.Error(suite.T(), err)
}

func (suite *VisitRepoTestSuite) TestCreateBatch_EmptyIsNoOp() {
	err := suite.repo.CreateBatch(suite.context, nil)
	assert.NoError(suite.T(), err)
}

func (suite *VisitRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM visits WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, id).
		WillReturnError(pgx.ErrNoRows)

	visit, err := suite.repo.GetByID(suite.context, suite.tenantID, id)
	assert.Nil(suite.T(), visit)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *VisitRepoTestSuite) TestUpdate_Success() {
	visit := suite.visit()

	suite.mock.ExpectExec(`UPDATE visits`).
		WithArgs(visit.Zipcode, visit.City, visit.State, visit.HouseholdSize, visit.Age0To18,
			visit.Age19To59, visit.Age60Plus, visit.FirstVisitThisMonth, visit.Comments,
			visit.TenantID, visit.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, visit)
	assert.NoError(suite.T(), err)
}

func (suite *VisitRepoTestSuite) TestUpdate_NotFound() {
	visit := suite.visit()

	suite.mock.ExpectExec(`UPDATE visits`).
		WithArgs(visit.Zipcode, visit.City, visit.State, visit.HouseholdSize, visit.Age0To18,
			visit.Age19To59, visit.Age60Plus, visit.FirstVisitThisMonth, visit.Comments,
			visit.TenantID, visit.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, visit)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *VisitRepoTestSuite) TestDelete_NotFound() {
	id := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM visits WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.tenantID, id)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *VisitRepoTestSuite) TestCountOnDate() {
	date := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM visits WHERE tenant_id = \$1 AND visit_date = \$2`).
		WithArgs(suite.tenantID, date).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := suite.repo.CountOnDate(suite.context, suite.tenantID, date)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, count)
}

func (suite *VisitRepoTestSuite) TestListBetween_ScansRows() {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	visit := suite.visit()

	rows := pgxmock.NewRows([]string{
		"id", "tenant_id", "patron_id", "visit_date", "is_food_truck", "zipcode", "city", "state",
		"household_size", "age_0_18", "age_19_59", "age_60_plus", "first_visit_this_month", "comments",
		"patron_first_name", "patron_last_name", "patron_address", "patron_city", "patron_state",
		"patron_zipcode", "created_at",
	}).AddRow(
		visit.ID, visit.TenantID, nil, visit.VisitDate, false, visit.Zipcode, nil, nil,
		visit.HouseholdSize, visit.Age0To18, visit.Age19To59, visit.Age60Plus, false, nil,
		nil, nil, nil, nil, nil, nil, time.Now(),
	)

	suite.mock.ExpectQuery(`SELECT (.+) FROM visits`).
		WithArgs(suite.tenantID, from, to).
		WillReturnRows(rows)

	visits, err := suite.repo.ListBetween(suite.context, suite.tenantID, from, to)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), visits, 1)
	assert.Equal(suite.T(), visit.ID, visits[0].ID)
	assert.True(suite.T(), visits[0].Anonymous())
}
