package lead

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "lead-crm-service/internal/domain/lead"
	pkgerrors "lead-crm-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, l *domain.Lead) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Lead, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *MockRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Lead, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, l *domain.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	svc := New(mockRepo, zaptest.NewLogger(t))
	return svc, mockRepo
}

func strptr(s string) *string { return &s }

// ==================== CREATE TESTS ====================

func TestCreate_DefaultsStatusToNew(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	created := &domain.Lead{ID: "lead-1", Name: "Bob", Email: "b@x.com", Phone: "1", Status: domain.StatusNew, UserID: "user-a"}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
		return l.Status == domain.StatusNew && l.UserID == "user-a"
	})).Return("lead-1", nil)
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-a").Return(created, nil)

	got, err := svc.Create(ctx, "user-a", CreateLeadRequest{Name: "Bob", Email: "b@x.com", Phone: "1"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, got.Status)
	assert.Equal(t, "user-a", got.UserID)
	mockRepo.AssertExpectations(t)
}

func TestCreate_KeepsSuppliedStatus(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
		return l.Status == "Contacted"
	})).Return("lead-1", nil)
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-a").
		Return(&domain.Lead{ID: "lead-1", Status: "Contacted", UserID: "user-a"}, nil)

	got, err := svc.Create(ctx, "user-a", CreateLeadRequest{Name: "Bob", Email: "b@x.com", Phone: "1", Status: "Contacted"})

	require.NoError(t, err)
	assert.Equal(t, "Contacted", got.Status)
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	cases := []CreateLeadRequest{
		{Email: "b@x.com", Phone: "1"},
		{Name: "Bob", Phone: "1"},
		{Name: "Bob", Email: "b@x.com"},
		{},
	}

	for _, req := range cases {
		got, err := svc.Create(ctx, "user-a", req)
		assert.Nil(t, got)
		require.Error(t, err)
		assert.Equal(t, "Name, email, and phone are required", err.Error())

		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	}
}

// ==================== GET / LIST TESTS ====================

func TestGet_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	want := &domain.Lead{ID: "lead-1", UserID: "user-a"}
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-a").Return(want, nil)

	got, err := svc.Get(ctx, "user-a", "lead-1")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	// The repository never returns another owner's lead; the service reports
	// that as not found, not forbidden.
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-b").Return(nil, nil)

	got, err := svc.Get(ctx, "user-b", "lead-1")

	assert.Nil(t, got)
	require.Error(t, err)
	assert.Equal(t, "Lead not found", err.Error())

	var nf *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestList_ScopedToOwner(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	owned := []domain.Lead{
		{ID: "lead-2", UserID: "user-a"},
		{ID: "lead-1", UserID: "user-a"},
	}
	mockRepo.On("ListByOwner", ctx, "user-a").Return(owned, nil)

	got, err := svc.List(ctx, "user-a")

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, l := range got {
		assert.Equal(t, "user-a", l.UserID)
	}
}

func TestList_RepositoryError(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("ListByOwner", ctx, "user-a").Return(nil, errors.New("db down"))

	got, err := svc.List(ctx, "user-a")

	assert.Nil(t, got)
	var ie *pkgerrors.InternalError
	assert.ErrorAs(t, err, &ie)
}

// ==================== UPDATE TESTS ====================

func TestUpdate_AppliesOnlyPresentFields(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	existing := &domain.Lead{ID: "lead-1", Name: "Bob", Email: "b@x.com", Phone: "1", Status: domain.StatusNew, UserID: "user-a"}
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-a").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
		return l.Name == "Robert" && l.Email == "b@x.com" && l.Status == "Contacted"
	})).Return(nil)

	got, err := svc.Update(ctx, "user-a", "lead-1", UpdateLeadRequest{
		Name:   strptr("Robert"),
		Status: strptr("Contacted"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Robert", got.Name)
	assert.Equal(t, "b@x.com", got.Email)
	assert.Equal(t, "1", got.Phone)
	assert.Equal(t, "Contacted", got.Status)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_EmptyRequestStillSucceeds(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	existing := &domain.Lead{ID: "lead-1", Name: "Bob", Email: "b@x.com", Phone: "1", Status: domain.StatusNew, UserID: "user-a"}
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-a").Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)

	got, err := svc.Update(ctx, "user-a", "lead-1", UpdateLeadRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, domain.StatusNew, got.Status)
}

func TestUpdate_EmptyStringDoesNotClearField(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	existing := &domain.Lead{ID: "lead-1", Name: "Bob", Email: "b@x.com", Phone: "1", Status: domain.StatusNew, UserID: "user-a"}
	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-a").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
		return l.Name == "Bob"
	})).Return(nil)

	got, err := svc.Update(ctx, "user-a", "lead-1", UpdateLeadRequest{Name: strptr("")})

	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByIDAndOwner", ctx, "lead-1", "user-b").Return(nil, nil)

	got, err := svc.Update(ctx, "user-b", "lead-1", UpdateLeadRequest{Name: strptr("Robert")})

	assert.Nil(t, got)
	var nf *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
	mockRepo.AssertNotCalled(t, "Update")
}

// ==================== DELETE TESTS ====================

func TestDelete_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("DeleteByIDAndOwner", ctx, "lead-1", "user-a").Return(int64(1), nil)

	assert.NoError(t, svc.Delete(ctx, "user-a", "lead-1"))
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("DeleteByIDAndOwner", ctx, "lead-1", "user-a").Return(int64(1), nil).Once()
	mockRepo.On("DeleteByIDAndOwner", ctx, "lead-1", "user-a").Return(int64(0), nil).Once()

	require.NoError(t, svc.Delete(ctx, "user-a", "lead-1"))

	err := svc.Delete(ctx, "user-a", "lead-1")
	require.Error(t, err)

	var nf *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDelete_OtherOwnerIsNotFound(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("DeleteByIDAndOwner", ctx, "lead-1", "user-b").Return(int64(0), nil)

	err := svc.Delete(ctx, "user-b", "lead-1")
	require.Error(t, err)
	assert.Equal(t, "Lead not found", err.Error())
}
