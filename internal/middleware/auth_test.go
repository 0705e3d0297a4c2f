package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/flexfit/internal/model"
)

// --- モック定義 ---

type mockTokenVerifier struct {
	verifyFn func(tokenString string) (string, error)
}

func (m *mockTokenVerifier) Verify(tokenString string) (string, error) {
	if m.verifyFn != nil {
		return m.verifyFn(tokenString)
	}
	return "", errors.New("not implemented")
}

type mockUserFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func testUser() *model.User {
	return &model.User{ID: "user-123", Email: "a@x.com", Name: "A"}
}

func authHandler(verifier TokenVerifier, finder UserFinder, captured **model.User) http.Handler {
	mw := NewAuthMiddleware(verifier, finder)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := UserFromContext(r.Context()); err == nil {
			*captured = user
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddleware_ValidToken_InjectsUser(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (string, error) {
			if tokenString != "valid-token" {
				t.Errorf("token = %q, want %q", tokenString, "valid-token")
			}
			return "user-123", nil
		},
	}
	finder := &mockUserFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if id != "user-123" {
				t.Errorf("id = %q, want %q", id, "user-123")
			}
			return testUser(), nil
		},
	}

	var captured *model.User
	handler := authHandler(verifier, finder, &captured)

	req := httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("expected user injected into context")
	}
	if captured.ID != "user-123" {
		t.Errorf("user ID = %q, want %q", captured.ID, "user-123")
	}
}

func TestAuthMiddleware_MissingHeader_Returns401(t *testing.T) {
	var captured *model.User
	handler := authHandler(&mockTokenVerifier{}, &mockUserFinder{}, &captured)

	req := httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
	if captured != nil {
		t.Error("handler should not run for unauthenticated request")
	}
}

func TestAuthMiddleware_NonBearerHeader_Returns401(t *testing.T) {
	var captured *model.User
	handler := authHandler(&mockTokenVerifier{}, &mockUserFinder{}, &captured)

	req := httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidToken_Returns401(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (string, error) {
			return "", errors.New("invalid token")
		},
	}

	var captured *model.User
	handler := authHandler(verifier, &mockUserFinder{}, &captured)

	req := httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

// トークンは有効だがユーザーが既に存在しない場合も401になることを検証
func TestAuthMiddleware_UserNotFound_Returns401(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (string, error) {
			return "ghost-user", nil
		},
	}
	finder := &mockUserFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}

	var captured *model.User
	handler := authHandler(verifier, finder, &captured)

	req := httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil)
	req.Header.Set("Authorization", "Bearer orphan-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

// 失敗理由（未提示・無効・ユーザー不在）によらずレスポンスが同一であることを検証
func TestAuthMiddleware_FailureResponsesAreUniform(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (string, error) {
			return "", errors.New("invalid")
		},
	}
	finder := &mockUserFinder{}

	var captured *model.User

	missing := httptest.NewRecorder()
	authHandler(verifier, finder, &captured).ServeHTTP(missing,
		httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil))

	invalidReq := httptest.NewRequest(http.MethodGet, "/api/workout-plans", nil)
	invalidReq.Header.Set("Authorization", "Bearer bad")
	invalid := httptest.NewRecorder()
	authHandler(verifier, finder, &captured).ServeHTTP(invalid, invalidReq)

	if missing.Body.String() != invalid.Body.String() {
		t.Errorf("missing-credentials body %q should equal invalid-credentials body %q",
			missing.Body.String(), invalid.Body.String())
	}
}

func TestUserFromContext_NotSet_ReturnsError(t *testing.T) {
	_, err := UserFromContext(context.Background())
	if err == nil {
		t.Error("expected error when user is not in context")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"正常なBearerトークン", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"ヘッダーなし", "", ""},
		{"Bearerプレフィックスなし", "abc.def.ghi", ""},
		{"別スキーム", "Basic abc", ""},
		{"トークン前後の空白", "Bearer   abc  ", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
