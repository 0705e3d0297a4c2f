package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/flexfit/internal/middleware"
	"github.com/hitoshi/flexfit/internal/model"
	"github.com/hitoshi/flexfit/internal/plan"
)

// PlanServiceInterface はプランハンドラーが必要とするサービスインターフェース。
type PlanServiceInterface interface {
	// Create は認証済みユーザーを所有者としてプランを作成する。
	Create(ctx context.Context, userID string, input plan.CreateInput) (*model.WorkoutPlan, error)
	// List は認証済みユーザーが所有するプラン一覧を返す。
	List(ctx context.Context, userID string) ([]*model.WorkoutPlan, error)
	// Update は(planID, userID)に一致するプランを部分更新する。
	Update(ctx context.Context, userID, planID string, patch model.WorkoutPlanPatch) (*model.WorkoutPlan, error)
	// Delete は(planID, userID)に一致するプランを削除する。
	Delete(ctx context.Context, userID, planID string) error
}

// PlanMetricsRecorder はプラン作成のメトリクス記録インターフェース。nil許容。
type PlanMetricsRecorder interface {
	RecordPlanCreated()
}

// PlanHandler はワークアウトプラン管理のHTTPハンドラー。
type PlanHandler struct {
	service PlanServiceInterface
	metrics PlanMetricsRecorder
}

// NewPlanHandler はPlanHandlerを生成する。metricsはnilでもよい。
func NewPlanHandler(service PlanServiceInterface, metrics PlanMetricsRecorder) *PlanHandler {
	return &PlanHandler{
		service: service,
		metrics: metrics,
	}
}

// planResponse はワークアウトプランのAPIレスポンス。
type planResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	PlanName  string           `json:"planName"`
	Type      model.PlanType   `json:"type"`
	Exercises []model.Exercise `json:"exercises"`
	CreatedAt time.Time        `json:"createdAt"`
}

// createPlanRequest はプラン作成リクエストのボディ。
// exercisesが省略された場合はnilになり、入力エラーとして扱われる。
type createPlanRequest struct {
	PlanName  string           `json:"planName"`
	Type      model.PlanType   `json:"type"`
	Exercises []model.Exercise `json:"exercises"`
}

// updatePlanRequest はプラン部分更新リクエストのボディ。
// 省略されたフィールドは既存の値を維持する。
type updatePlanRequest struct {
	PlanName  *string          `json:"planName"`
	Type      *model.PlanType  `json:"type"`
	Exercises []model.Exercise `json:"exercises"`
}

// messageResponse は削除成功などの確認メッセージレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// CreatePlan は認証済みユーザーのプランを作成する。
// POST /api/workout-plans
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createPlanRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Create(r.Context(), user.ID, plan.CreateInput{
		PlanName:  req.PlanName,
		Type:      req.Type,
		Exercises: req.Exercises,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPlanCreated()
	}
	writeJSONResponse(w, http.StatusCreated, toPlanResponse(created))
}

// ListPlans は認証済みユーザーのプラン一覧を取得する。
// GET /api/workout-plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	plans, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// プランがない場合も空配列を返す（nullにしない）
	responses := make([]planResponse, len(plans))
	for i, p := range plans {
		responses[i] = toPlanResponse(p)
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// UpdatePlan は認証済みユーザーが所有するプランを部分更新する。
// PUT /api/workout-plans/{id}
func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	planID := chi.URLParam(r, "id")

	var req updatePlanRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました"))
		return
	}

	updated, err := h.service.Update(r.Context(), user.ID, planID, model.WorkoutPlanPatch{
		PlanName:  req.PlanName,
		Type:      req.Type,
		Exercises: req.Exercises,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPlanResponse(updated))
}

// DeletePlan は認証済みユーザーが所有するプランを削除する。
// DELETE /api/workout-plans/{id}
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	planID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), user.ID, planID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, messageResponse{Message: "プランを削除しました。"})
}

// toPlanResponse はドメインのWorkoutPlanをAPIレスポンス型に変換する。
func toPlanResponse(p *model.WorkoutPlan) planResponse {
	exercises := p.Exercises
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	return planResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		PlanName:  p.PlanName,
		Type:      p.Type,
		Exercises: exercises,
		CreatedAt: p.CreatedAt,
	}
}
