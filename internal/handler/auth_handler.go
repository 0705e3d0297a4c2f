package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/flexfit/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Register は新規アカウントを作成し、アクセストークンを発行する。
	Register(ctx context.Context, email, password, name string) (string, *model.User, error)
	// Login は認証情報を検証し、アクセストークンを発行する。
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

// AuthMetricsRecorder は認証結果のメトリクス記録インターフェース。
// metrics.Recorderの部分集合として定義する。nil許容。
type AuthMetricsRecorder interface {
	RecordAuthSuccess(operation string)
	RecordAuthFailure(operation string)
}

// AuthHandler は登録・ログインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	metrics AuthMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。metricsはnilでもよい。
func NewAuthHandler(service AuthServiceInterface, metrics AuthMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: metrics,
	}
}

// registerRequest はアカウント登録リクエストのボディ。
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse はユーザー情報のAPIレスポンス。パスワードハッシュは含めない。
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// authResponse は登録・ログイン成功時のAPIレスポンス。
type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Register は新規アカウントを作成する。
// POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました"))
		return
	}

	token, user, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.recordAuthFailure("register")
		handleServiceError(w, err)
		return
	}

	h.recordAuthSuccess("register")
	writeJSONResponse(w, http.StatusCreated, authResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Login は認証情報を検証し、アクセストークンを発行する。
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました"))
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recordAuthFailure("login")
		handleServiceError(w, err)
		return
	}

	h.recordAuthSuccess("login")
	writeJSONResponse(w, http.StatusOK, authResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (h *AuthHandler) recordAuthSuccess(operation string) {
	if h.metrics != nil {
		h.metrics.RecordAuthSuccess(operation)
	}
}

func (h *AuthHandler) recordAuthFailure(operation string) {
	if h.metrics != nil {
		h.metrics.RecordAuthFailure(operation)
	}
}

// toUserResponse はドメインのUserをAPIレスポンス型に変換する。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}
