// Package plan はワークアウトプラン管理のドメインロジックを提供する。
// すべての操作は認証済みユーザーのIDを所有フィルタとして適用する。
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/flexfit/internal/model"
	"github.com/hitoshi/flexfit/internal/repository"
)

// CreateInput はプラン作成の入力を表す。
// Exercisesはnilの場合「未指定」として入力エラーになる。空スライスは有効。
type CreateInput struct {
	PlanName  string
	Type      model.PlanType
	Exercises []model.Exercise
}

// Service はワークアウトプラン管理のサービス層。
type Service struct {
	planRepo repository.WorkoutPlanRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(planRepo repository.WorkoutPlanRepository) *Service {
	return &Service{planRepo: planRepo}
}

// Create は認証済みユーザーを所有者としてプランを作成する。
// クライアントが指定した所有者情報は一切参照しない。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.WorkoutPlan, error) {
	input.PlanName = strings.TrimSpace(input.PlanName)
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	plan := &model.WorkoutPlan{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanName:  input.PlanName,
		Type:      input.Type,
		Exercises: input.Exercises,
		CreatedAt: time.Now(),
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("プランの作成に失敗しました: %w", err)
	}

	slog.Info("プランを作成しました",
		slog.String("plan_id", plan.ID),
		slog.String("user_id", userID),
	)

	return plan, nil
}

// List は認証済みユーザーが所有するプラン一覧を返す。
// 所有プランがない場合は空スライスを返す（エラーではない）。
func (s *Service) List(ctx context.Context, userID string) ([]*model.WorkoutPlan, error) {
	plans, err := s.planRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("プラン一覧の取得に失敗しました: %w", err)
	}
	return plans, nil
}

// Update は(planID, userID)に一致するプランを部分更新する。
// 省略されたフィールドは既存の値を維持する。
// 存在しない場合と他ユーザー所有の場合はどちらもPLAN_NOT_FOUNDを返す。
func (s *Service) Update(ctx context.Context, userID, planID string, patch model.WorkoutPlanPatch) (*model.WorkoutPlan, error) {
	if patch.PlanName != nil {
		trimmed := strings.TrimSpace(*patch.PlanName)
		if trimmed == "" {
			return nil, model.NewValidationError("planNameを空にすることはできません")
		}
		patch.PlanName = &trimmed
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, model.NewValidationError(
			fmt.Sprintf("typeはBeginner/Intermediate/Advancedのいずれかを指定してください: %s", *patch.Type))
	}

	updated, err := s.planRepo.UpdateByOwner(ctx, planID, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("プランの更新に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewPlanNotFoundError(planID)
	}

	return updated, nil
}

// Delete は(planID, userID)に一致するプランを削除する。
// 存在しない場合と他ユーザー所有の場合はどちらもPLAN_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, userID, planID string) error {
	deleted, err := s.planRepo.DeleteByOwner(ctx, planID, userID)
	if err != nil {
		return fmt.Errorf("プランの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewPlanNotFoundError(planID)
	}

	slog.Info("プランを削除しました",
		slog.String("plan_id", planID),
		slog.String("user_id", userID),
	)

	return nil
}

// validateCreateInput はプラン作成入力の必須チェックを行う。
func validateCreateInput(input CreateInput) error {
	var missing []string
	if input.PlanName == "" {
		missing = append(missing, "planName")
	}
	if input.Type == "" {
		missing = append(missing, "type")
	}
	if input.Exercises == nil {
		missing = append(missing, "exercises")
	}
	if len(missing) > 0 {
		return model.NewValidationError(
			fmt.Sprintf("必須項目が不足しています: %s", strings.Join(missing, ", ")))
	}
	if !input.Type.IsValid() {
		return model.NewValidationError(
			fmt.Sprintf("typeはBeginner/Intermediate/Advancedのいずれかを指定してください: %s", input.Type))
	}
	return nil
}
