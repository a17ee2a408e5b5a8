package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVisitService struct {
	mock.Mock
}

func (m *MockVisitService) Record(ctx context.Context, tenantID uuid.UUID, entry *services.VisitEntry) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Visit, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitService) Update(ctx context.Context, tenantID, id uuid.UUID, entry *services.VisitEntry) (*models.Visit, error) {
	args := m.Called(ctx, tenantID, id, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVisitService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitService) ListWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitService) ListByPatron(ctx context.Context, tenantID, patronID uuid.UUID) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, patronID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

// visitContext builds an echo context carrying a resolved foodbank actor,
// the shape requests have after the JWT middleware runs.
func visitContext(t *testing.T, method, path, body string, tenantID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	actor := &common.Actor{Kind: common.ActorFoodbank, UserID: uuid.New(), FoodbankID: tenantID}
	req = req.WithContext(common.WithActor(req.Context(), actor))

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecordVisit_ReturnsAllCreatedRows(t *testing.T) {
	mockService := &MockVisitService{}
	mockService.Test(t)
	handlers := NewVisitHandlers(mockService)

	tenantID := uuid.New()
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	created := []*models.Visit{
		{ID: uuid.New(), TenantID: tenantID, VisitDate: day, Zipcode: "97201", HouseholdSize: 4},
		{ID: uuid.New(), TenantID: tenantID, VisitDate: day, IsFoodTruck: true, Zipcode: "97201", HouseholdSize: 4},
	}

	mockService.On("Record", mock.Anything, tenantID, mock.AnythingOfType("*services.VisitEntry")).
		Return(created, nil).
		Run(func(args mock.Arguments) {
			entry := args.Get(2).(*services.VisitEntry)
			assert.True(t, entry.Pantry)
			assert.True(t, entry.FoodTruck)
			assert.Equal(t, 4, entry.HouseholdSize)
		})

	body := `{"zipcode":"97201","household_size":4,"age_0_18":2,"age_19_59":1,"age_60_plus":1,"pantry":true,"food_truck":true}`
	c, rec := visitContext(t, http.MethodPost, "/v1/visits", body, tenantID)

	require.NoError(t, handlers.RecordVisit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Visits []*models.Visit `json:"visits"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Visits, 2)
	assert.False(t, resp.Visits[0].IsFoodTruck)
	assert.True(t, resp.Visits[1].IsFoodTruck)
	mockService.AssertExpectations(t)
}

func TestRecordVisit_ValidationErrorBody(t *testing.T) {
	mockService := &MockVisitService{}
	mockService.Test(t)
	handlers := NewVisitHandlers(mockService)

	tenantID := uuid.New()
	mockService.On("Record", mock.Anything, tenantID, mock.AnythingOfType("*services.VisitEntry")).
		Return(nil, common.NewValidationError("age_groups", "age groups must add up to household size (4); currently adds to 3"))

	body := `{"zipcode":"97201","household_size":4,"age_0_18":2,"age_19_59":1,"pantry":true}`
	c, rec := visitContext(t, http.MethodPost, "/v1/visits", body, tenantID)

	require.NoError(t, handlers.RecordVisit(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details["age_groups"], "currently adds to 3")
	mockService.AssertExpectations(t)
}

func TestRecordVisit_MissingActor(t *testing.T) {
	handlers := NewVisitHandlers(&MockVisitService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/visits", strings.NewReader(`{"zipcode":"97201"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handlers.RecordVisit(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestListVisits_ClampsLimit(t *testing.T) {
	mockService := &MockVisitService{}
	mockService.Test(t)
	handlers := NewVisitHandlers(mockService)

	tenantID := uuid.New()
	mockService.On("List", mock.Anything, tenantID, 100, 0).Return([]*models.Visit{}, nil)

	c, rec := visitContext(t, http.MethodGet, "/v1/visits?limit=5000", "", tenantID)

	require.NoError(t, handlers.ListVisits(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestListVisits_DateWindow(t *testing.T) {
	mockService := &MockVisitService{}
	mockService.Test(t)
	handlers := NewVisitHandlers(mockService)

	tenantID := uuid.New()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	mockService.On("ListWindow", mock.Anything, tenantID, from, to).Return([]*models.Visit{}, nil)

	c, rec := visitContext(t, http.MethodGet, "/v1/visits?from=2024-03-01&to=2024-03-31", "", tenantID)

	require.NoError(t, handlers.ListVisits(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestGetVisit_NotFound(t *testing.T) {
	mockService := &MockVisitService{}
	mockService.Test(t)
	handlers := NewVisitHandlers(mockService)

	tenantID := uuid.New()
	visitID := uuid.New()
	mockService.On("GetByID", mock.Anything, tenantID, visitID).Return(nil, common.ErrNotFound)

	c, rec := visitContext(t, http.MethodGet, "/v1/visits/"+visitID.String(), "", tenantID)
	c.SetParamNames("id")
	c.SetParamValues(visitID.String())

	require.NoError(t, handlers.GetVisit(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockService.AssertExpectations(t)
}

func TestGetVisit_BadUUID(t *testing.T) {
	handlers := NewVisitHandlers(&MockVisitService{})

	c, _ := visitContext(t, http.MethodGet, "/v1/visits/not-a-uuid", "", uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := handlers.GetVisit(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
