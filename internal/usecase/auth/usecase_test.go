package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "lead-crm-service/internal/domain/user"
	pkgerrors "lead-crm-service/pkg/errors"
	"lead-crm-service/pkg/security"
	"lead-crm-service/pkg/token"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	tokens := token.NewManager("test-secret", time.Hour)
	svc := New(mockRepo, tokens, zaptest.NewLogger(t))
	return svc, mockRepo
}

// ==================== REGISTER TESTS ====================

func TestRegister_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
		PhoneNo:  "555",
	}

	mockRepo.On("GetByEmail", ctx, "a@x.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Ann" &&
			u.Email == "a@x.com" &&
			u.PhoneNo == "555" &&
			u.Password != "secret1" &&
			security.VerifyPassword(u.Password, "secret1")
	})).Return("user-1", nil)

	resp, err := svc.Register(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, "a@x.com", resp.Email)

	mockRepo.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	cases := []RegisterRequest{
		{Email: "a@x.com", Password: "secret1", PhoneNo: "555"},
		{Name: "Ann", Password: "secret1", PhoneNo: "555"},
		{Name: "Ann", Email: "a@x.com", PhoneNo: "555"},
		{Name: "Ann", Email: "a@x.com", Password: "secret1"},
		{},
	}

	for _, req := range cases {
		resp, err := svc.Register(ctx, req)
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, "All fields are required", err.Error())

		var ve *pkgerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	}
}

func TestRegister_EmailNormalized(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Name:     "  Ann  ",
		Email:    "  Ann@X.COM ",
		Password: "secret1",
		PhoneNo:  " 555 ",
	}

	mockRepo.On("GetByEmail", ctx, "ann@x.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ann@x.com" && u.Name == "Ann" && u.PhoneNo == "555"
	})).Return("user-1", nil)

	resp, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", resp.Email)
	mockRepo.AssertExpectations(t)
}

func TestRegister_InvalidEmailShape(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ann",
		Email:    "not-an-email",
		Password: "secret1",
		PhoneNo:  "555",
	})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email")
}

func TestRegister_PasswordTooShort(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "short",
		PhoneNo:  "555",
	})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password must be at least 6 characters")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "a@x.com").Return(&domain.User{ID: "user-1", Email: "a@x.com"}, nil)

	// Case difference must not bypass the conflict check.
	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ann",
		Email:    "A@X.com",
		Password: "secret1",
		PhoneNo:  "555",
	})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.Error())

	var ce *pkgerrors.ConflictError
	assert.ErrorAs(t, err, &ce)
	mockRepo.AssertExpectations(t)
}

func TestRegister_RepositoryError(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "a@x.com").Return(nil, errors.New("db down"))

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
		PhoneNo:  "555",
	})

	assert.Nil(t, resp)
	var ie *pkgerrors.InternalError
	assert.ErrorAs(t, err, &ie)
}

// ==================== LOGIN TESTS ====================

func registeredUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := security.HashPassword("secret1")
	require.NoError(t, err)
	return &domain.User{
		ID:       "user-1",
		Name:     "Ann",
		Email:    "a@x.com",
		Password: hash,
		PhoneNo:  "555",
	}
}

func TestLogin_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "a@x.com").Return(registeredUser(t), nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "secret1"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "Ann", resp.User.Name)
	assert.Equal(t, "555", resp.User.PhoneNo)

	// Token must verify and be bound to the user's ID.
	tokens := token.NewManager("test-secret", time.Hour)
	uid, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for _, req := range []LoginRequest{
		{Password: "secret1"},
		{Email: "a@x.com"},
		{},
	} {
		resp, err := svc.Login(ctx, req)
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, "Email and password are required", err.Error())
	}
}

func TestLogin_IdenticalErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "missing@x.com").Return(nil, nil)
	mockRepo.On("GetByEmail", ctx, "a@x.com").Return(registeredUser(t), nil)

	_, unknownErr := svc.Login(ctx, LoginRequest{Email: "missing@x.com", Password: "secret1"})
	_, wrongPwErr := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPwErr)
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())

	var unknownAuth, wrongAuth *pkgerrors.AuthError
	require.ErrorAs(t, unknownErr, &unknownAuth)
	require.ErrorAs(t, wrongPwErr, &wrongAuth)
	assert.Equal(t, unknownAuth.HTTPStatus(), wrongAuth.HTTPStatus())
}

func TestLogin_EmailNormalized(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "a@x.com").Return(registeredUser(t), nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: " A@X.com ", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)
	mockRepo.AssertExpectations(t)
}
