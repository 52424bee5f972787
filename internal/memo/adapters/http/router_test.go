package http_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	memohttp "gomemo/internal/memo/adapters/http"
	"gomemo/internal/memo/adapters/http/middleware"
	"gomemo/internal/memo/app/dto"
	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/domain/services"
)

const (
	testUserID = "5b6c7d8e-1f2a-4b3c-8d9e-0a1b2c3d4e5f"
	testMemoID = "7f1c2d4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f"
	validToken = "valid-token"
)

type mockAccountUseCase struct {
	mock.Mock
}

func (m *mockAccountUseCase) Register(ctx context.Context, firstName, lastName, email, password string) (*services.Registration, error) {
	args := m.Called(ctx, firstName, lastName, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Registration), args.Error(1)
}

func (m *mockAccountUseCase) Login(ctx context.Context, email, password string) (*services.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

type mockMemoUseCase struct {
	mock.Mock
}

func (m *mockMemoUseCase) AddMemo(ctx context.Context, userID, content string) ([]entities.Memo, error) {
	args := m.Called(ctx, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Memo), args.Error(1)
}

func (m *mockMemoUseCase) DeleteMemo(ctx context.Context, userID, memoID string) ([]entities.Memo, error) {
	args := m.Called(ctx, userID, memoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Memo), args.Error(1)
}

// stubTokens принимает только validToken.
type stubTokens struct{}

func (stubTokens) GenerateToken(context.Context, string) (string, error) {
	return validToken, nil
}

func (stubTokens) ValidateToken(_ context.Context, token string) (string, error) {
	if token != validToken {
		return "", services.ErrInvalidJWTToken
	}
	return testUserID, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

type testServer struct {
	app      *fiber.App
	accounts *mockAccountUseCase
	memos    *mockMemoUseCase
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()

	accounts := &mockAccountUseCase{}
	memos := &mockMemoUseCase{}

	app := memohttp.NewApp(fiber.Config{}, memohttp.Dependencies{
		Accounts: accounts,
		Memos:    memos,
		Tokens:   stubTokens{},
		Store:    stubPinger{err: pingErr},
	})

	t.Cleanup(func() {
		accounts.AssertExpectations(t)
		memos.AssertExpectations(t)
	})

	return &testServer{app: app, accounts: accounts, memos: memos}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) (int, string, http.Header) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data), resp.Header
}

func TestRegister(t *testing.T) {
	const body = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"analytical"}`

	t.Run("successful registration", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.accounts.On("Register", mock.Anything, "Ada", "Lovelace", "ada@example.com", "analytical").
			Return(&services.Registration{User: &entities.User{ID: testUserID}, Token: validToken}, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users", body, "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "success", respBody)
	})

	t.Run("email already taken", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.accounts.On("Register", mock.Anything, "Ada", "Lovelace", "ada@example.com", "analytical").
			Return(nil, fmt.Errorf("registering user: %w", services.ErrEmailAlreadyExists))

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users", body, "")

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "User already registered.", respBody)
	})

	t.Run("validation message is returned as is", func(t *testing.T) {
		s := newTestServer(t, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users", `{"firstName":"A"}`, "")

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, `"firstName" length must be at least 2 characters long`, respBody)
		assert.Empty(t, s.accounts.Calls)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		s := newTestServer(t, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users", `{"firstName":`, "")

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid request body.", respBody)
		s.accounts.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unexpected store failure", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.accounts.On("Register", mock.Anything, "Ada", "Lovelace", "ada@example.com", "analytical").
			Return(nil, errors.New("connection refused"))

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users", body, "")

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Internal Server Error", respBody)
	})
}

func TestLogin(t *testing.T) {
	const body = `{"email":"ada@example.com","password":"analytical"}`

	t.Run("successful login", func(t *testing.T) {
		s := newTestServer(t, nil)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		s.accounts.On("Login", mock.Anything, "ada@example.com", "analytical").
			Return(&services.Session{
				Token: validToken,
				Email: "ada@example.com",
				Memos: []entities.Memo{{ID: testMemoID, Content: "first", CreatedAt: created}},
			}, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users/login", body, "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{
			"token": "valid-token",
			"email": "ada@example.com",
			"memos": [{"_id": "`+testMemoID+`", "timeStamps": "2024-05-01T12:00:00Z", "content": "first"}]
		}`, respBody)
	})

	t.Run("empty memo list is an array", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.accounts.On("Login", mock.Anything, "ada@example.com", "analytical").
			Return(&services.Session{Token: validToken, Email: "ada@example.com"}, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users/login", body, "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"token":"valid-token","email":"ada@example.com","memos":[]}`, respBody)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.accounts.On("Login", mock.Anything, "ada@example.com", "analytical").
			Return(nil, services.ErrInvalidCredentials)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users/login", body, "")

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid email or password.", respBody)
	})
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "addMemo without header",
			method:     fiber.MethodPost,
			path:       "/users/addMemo",
			body:       `{"content":"hello"}`,
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   middleware.MsgNoToken,
		},
		{
			name:       "addMemo with forged token",
			method:     fiber.MethodPost,
			path:       "/users/addMemo",
			body:       `{"content":"hello"}`,
			token:      "Bearer forged",
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   middleware.MsgInvalidToken,
		},
		{
			name:       "addMemo without Bearer prefix",
			method:     fiber.MethodPost,
			path:       "/users/addMemo",
			body:       `{"content":"hello"}`,
			token:      validToken,
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   middleware.MsgInvalidToken,
		},
		{
			name:       "deleteMemo without header",
			method:     fiber.MethodDelete,
			path:       "/users/deleteMemo",
			body:       `{"memoId":"` + testMemoID + `"}`,
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   middleware.MsgNoToken,
		},
		{
			name:       "deleteMemo with empty token",
			method:     fiber.MethodDelete,
			path:       "/users/deleteMemo",
			body:       `{"memoId":"` + testMemoID + `"}`,
			token:      "Bearer ",
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   middleware.MsgInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)

			status, respBody, _ := s.do(t, tt.method, tt.path, tt.body, tt.token)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, respBody)
			assert.Empty(t, s.memos.Calls)
		})
	}
}

func TestAddMemo(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("memo added", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.memos.On("AddMemo", mock.Anything, testUserID, "hello").
			Return([]entities.Memo{{ID: testMemoID, Content: "hello", CreatedAt: created}}, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users/addMemo", `{"content":"hello"}`, "Bearer "+validToken)

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `[{"_id":"`+testMemoID+`","timeStamps":"2024-05-01T12:00:00Z","content":"hello"}]`, respBody)
	})

	t.Run("user removed", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.memos.On("AddMemo", mock.Anything, testUserID, "hello").
			Return(nil, services.ErrNotAuthorized)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users/addMemo", `{"content":"hello"}`, "Bearer "+validToken)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Not authorized.", respBody)
	})

	t.Run("panic becomes 500", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.memos.On("AddMemo", mock.Anything, testUserID, "hello").
			Run(func(mock.Arguments) { panic("boom") }).
			Return(nil, nil)

		status, respBody, _ := s.do(t, fiber.MethodPost, "/users/addMemo", `{"content":"hello"}`, "Bearer "+validToken)

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Internal Server Error", respBody)
	})
}

func TestDeleteMemo(t *testing.T) {
	body := `{"memoId":"` + testMemoID + `"}`

	t.Run("memo deleted", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.memos.On("DeleteMemo", mock.Anything, testUserID, testMemoID).
			Return([]entities.Memo{}, nil)

		status, respBody, _ := s.do(t, fiber.MethodDelete, "/users/deleteMemo", body, "Bearer "+validToken)

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `[]`, respBody)
	})

	t.Run("memo not found", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.memos.On("DeleteMemo", mock.Anything, testUserID, testMemoID).
			Return(nil, fmt.Errorf("deleting memo: %w", entities.ErrMemoNotFound))

		status, respBody, _ := s.do(t, fiber.MethodDelete, "/users/deleteMemo", body, "Bearer "+validToken)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Memo not found.", respBody)
	})

	t.Run("numeric memoId is not a string", func(t *testing.T) {
		s := newTestServer(t, nil)

		status, respBody, _ := s.do(t, fiber.MethodDelete, "/users/deleteMemo", `{"memoId":42}`, "Bearer "+validToken)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, `"memoId" must be a string`, respBody)
		assert.Empty(t, s.memos.Calls)
	})
}

func TestRequestBodySchema(t *testing.T) {
	const token = "Bearer " + validToken

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantBody string
	}{
		{
			name:     "register rejects unknown key",
			method:   fiber.MethodPost,
			path:     "/users",
			body:     `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"analytical","isAdmin":true}`,
			wantBody: `"isAdmin" is not allowed`,
		},
		{
			name:     "login rejects unknown key",
			method:   fiber.MethodPost,
			path:     "/users/login",
			body:     `{"email":"ada@example.com","password":"analytical","isAdmin":true}`,
			wantBody: `"isAdmin" is not allowed`,
		},
		{
			name:     "addMemo rejects unknown key",
			method:   fiber.MethodPost,
			path:     "/users/addMemo",
			body:     `{"content":"hello","isAdmin":true}`,
			wantBody: `"isAdmin" is not allowed`,
		},
		{
			name:     "deleteMemo rejects unknown key",
			method:   fiber.MethodDelete,
			path:     "/users/deleteMemo",
			body:     `{"memoId":"` + testMemoID + `","isAdmin":true}`,
			wantBody: `"isAdmin" is not allowed`,
		},
		{
			name:     "register reports empty field",
			method:   fiber.MethodPost,
			path:     "/users",
			body:     `{"firstName":"","lastName":"Lovelace","email":"ada@example.com","password":"analytical"}`,
			wantBody: `"firstName" is not allowed to be empty`,
		},
		{
			name:     "register reports missing field",
			method:   fiber.MethodPost,
			path:     "/users",
			body:     `{"lastName":"Lovelace","email":"ada@example.com","password":"analytical"}`,
			wantBody: `"firstName" is required`,
		},
		{
			name:     "login reports non string password",
			method:   fiber.MethodPost,
			path:     "/users/login",
			body:     `{"email":"ada@example.com","password":12345678}`,
			wantBody: `"password" must be a string`,
		},
		{
			name:     "addMemo reports empty content",
			method:   fiber.MethodPost,
			path:     "/users/addMemo",
			body:     `{"content":""}`,
			wantBody: `"content" is not allowed to be empty`,
		},
		{
			name:     "addMemo reports null content",
			method:   fiber.MethodPost,
			path:     "/users/addMemo",
			body:     `{"content":null}`,
			wantBody: `"content" must be a string`,
		},
		{
			name:     "empty body reports first field",
			method:   fiber.MethodPost,
			path:     "/users/login",
			wantBody: `"email" is required`,
		},
		{
			name:     "array body is invalid",
			method:   fiber.MethodPost,
			path:     "/users/addMemo",
			body:     `["hello"]`,
			wantBody: "Invalid request body.",
		},
		{
			name:     "field errors precede unknown keys",
			method:   fiber.MethodDelete,
			path:     "/users/deleteMemo",
			body:     `{"isAdmin":true,"memoId":"42"}`,
			wantBody: `"memoId" must be a valid GUID`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)

			status, respBody, _ := s.do(t, tt.method, tt.path, tt.body, token)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.wantBody, respBody)
			assert.Empty(t, s.accounts.Calls)
			assert.Empty(t, s.memos.Calls)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		s := newTestServer(t, nil)

		status, respBody, _ := s.do(t, fiber.MethodGet, "/health", "", "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"status":"ok"}`, respBody)
	})

	t.Run("store unreachable", func(t *testing.T) {
		s := newTestServer(t, errors.New("dial tcp: connection refused"))

		status, respBody, _ := s.do(t, fiber.MethodGet, "/health", "", "")

		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.JSONEq(t, `{"status":"unavailable"}`, respBody)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	s.do(t, fiber.MethodGet, "/health", "", "")
	status, respBody, _ := s.do(t, fiber.MethodGet, "/metrics", "", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, respBody, "gomemo_http_request_duration_seconds")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	status, _, _ := s.do(t, fiber.MethodGet, "/users/profile", "", "")

	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("generated", func(t *testing.T) {
		_, _, header := s.do(t, fiber.MethodGet, "/health", "", "")
		assert.NotEmpty(t, header.Get(middleware.HeaderRequestID))
	})

	t.Run("sent by client", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")

		resp, err := s.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))
	})
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: memohttp.ErrorHandler})
	app.Get("/teapot", func(fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/body", func(fiber.Ctx) error {
		return fmt.Errorf("decoding: %w", dto.ErrInvalidBody)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", string(data))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/body", nil))
	require.NoError(t, err)
	data, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body.", string(data))
}
