package services

import (
	"context"
	"io"
	"time"

	"foodbanked/internal/geocoding"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) CreateBatch(ctx context.Context, visits []*models.Visit) error {
	args := m.Called(ctx, visits)
	return args.Error(0)
}

func (m *MockVisitRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Visit, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitRepository) Update(ctx context.Context, visit *models.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVisitRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitRepository) ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitRepository) ListByPatron(ctx context.Context, tenantID, patronID uuid.UUID) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, patronID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitRepository) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.Visit, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *MockVisitRepository) CountOnDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (int, error) {
	args := m.Called(ctx, tenantID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockVisitRepository) CountSince(ctx context.Context, tenantID uuid.UUID, from time.Time) (int, error) {
	args := m.Called(ctx, tenantID, from)
	return args.Int(0), args.Error(1)
}

type MockPatronRepository struct {
	mock.Mock
}

func (m *MockPatronRepository) Create(ctx context.Context, patron *models.Patron) error {
	args := m.Called(ctx, patron)
	return args.Error(0)
}

func (m *MockPatronRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Patron, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patron), args.Error(1)
}

func (m *MockPatronRepository) Update(ctx context.Context, patron *models.Patron) error {
	args := m.Called(ctx, patron)
	return args.Error(0)
}

func (m *MockPatronRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPatronRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Patron, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Patron), args.Error(1)
}

func (m *MockPatronRepository) Search(ctx context.Context, tenantID uuid.UUID, filter *models.PatronSearchFilter) ([]*models.Patron, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Patron), args.Error(1)
}

func (m *MockPatronRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type MockFoodbankRepository struct {
	mock.Mock
}

func (m *MockFoodbankRepository) Create(ctx context.Context, foodbank *models.Foodbank) error {
	args := m.Called(ctx, foodbank)
	return args.Error(0)
}

func (m *MockFoodbankRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Foodbank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Foodbank), args.Error(1)
}

func (m *MockFoodbankRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Foodbank, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Foodbank), args.Error(1)
}

func (m *MockFoodbankRepository) Update(ctx context.Context, foodbank *models.Foodbank) error {
	args := m.Called(ctx, foodbank)
	return args.Error(0)
}

func (m *MockFoodbankRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Foodbank, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Foodbank), args.Error(1)
}

func (m *MockFoodbankRepository) ListPublic(ctx context.Context) ([]*models.Foodbank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Foodbank), args.Error(1)
}

func (m *MockFoodbankRepository) ListMissingCoordinates(ctx context.Context, limit int) ([]*models.Foodbank, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Foodbank), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, organization *models.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, organization *models.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) ListPublic(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListMissingCoordinates(ctx context.Context, limit int) ([]*models.Organization, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.OrganizationAdmin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationAdmin), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockRegistrationCodeRepository struct {
	mock.Mock
}

func (m *MockRegistrationCodeRepository) GetByCode(ctx context.Context, code string) (*models.RegistrationCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegistrationCode), args.Error(1)
}

func (m *MockRegistrationCodeRepository) MarkUsed(ctx context.Context, code string, userID uuid.UUID) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) SetString(ctx context.Context, key, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) SetSession(ctx context.Context, sessionID, data string, expiration time.Duration) error {
	args := m.Called(ctx, sessionID, data, expiration)
	return args.Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	args := m.Called(ctx, key, window)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address, city, state, zipcode string) (*geocoding.Coordinates, error) {
	args := m.Called(ctx, address, city, state, zipcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocoding.Coordinates), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadObject(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockStorageService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
