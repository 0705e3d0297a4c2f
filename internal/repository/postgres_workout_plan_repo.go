package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/flexfit/internal/model"
)

// PostgresWorkoutPlanRepo はPostgreSQLを使用したワークアウトプランリポジトリ。
// エクササイズ列はJSONBとして保存する。
type PostgresWorkoutPlanRepo struct {
	db *sql.DB
}

// NewPostgresWorkoutPlanRepo はPostgresWorkoutPlanRepoを生成する。
func NewPostgresWorkoutPlanRepo(db *sql.DB) *PostgresWorkoutPlanRepo {
	return &PostgresWorkoutPlanRepo{db: db}
}

// Create はプランを作成する。
func (r *PostgresWorkoutPlanRepo) Create(ctx context.Context, plan *model.WorkoutPlan) error {
	exercises, err := json.Marshal(plan.Exercises)
	if err != nil {
		return fmt.Errorf("failed to marshal exercises: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO workout_plans (id, user_id, plan_name, type, exercises, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		plan.ID, plan.UserID, plan.PlanName, string(plan.Type), exercises, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert workout plan: %w", err)
	}
	return nil
}

// ListByUserID は指定ユーザーが所有するプラン一覧を作成日時順で返す。
func (r *PostgresWorkoutPlanRepo) ListByUserID(ctx context.Context, userID string) ([]*model.WorkoutPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, plan_name, type, exercises, created_at
		 FROM workout_plans
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans: %w", err)
	}
	defer rows.Close()

	plans := []*model.WorkoutPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workout plans: %w", err)
	}

	return plans, nil
}

// UpdateByOwner は(id, userID)に一致するプランを1文で部分更新する。
// COALESCEによりnilのフィールドは既存値を維持する。一致する行がない
// 場合はnilを返す。所有チェックと更新を分離しないことでTOCTOU競合を防ぐ。
func (r *PostgresWorkoutPlanRepo) UpdateByOwner(ctx context.Context, id, userID string, patch model.WorkoutPlanPatch) (*model.WorkoutPlan, error) {
	var planType *string
	if patch.Type != nil {
		s := string(*patch.Type)
		planType = &s
	}

	var exercises []byte
	if patch.Exercises != nil {
		b, err := json.Marshal(patch.Exercises)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal exercises: %w", err)
		}
		exercises = b
	}

	row := r.db.QueryRowContext(ctx,
		`UPDATE workout_plans
		 SET plan_name = COALESCE($3, plan_name),
		     type = COALESCE($4, type),
		     exercises = COALESCE($5, exercises)
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, plan_name, type, exercises, created_at`,
		id, userID, patch.PlanName, planType, exercises,
	)

	plan, err := scanPlan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update workout plan: %w", err)
	}

	return plan, nil
}

// DeleteByOwner は(id, userID)に一致するプランを1文で削除する。
// 削除された場合はtrueを返す。
func (r *PostgresWorkoutPlanRepo) DeleteByOwner(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM workout_plans WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete workout plan: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// scanPlan は1行分のワークアウトプランをスキャンする。
func scanPlan(scan func(dest ...any) error) (*model.WorkoutPlan, error) {
	plan := &model.WorkoutPlan{}
	var planType string
	var exercises []byte

	if err := scan(&plan.ID, &plan.UserID, &plan.PlanName, &planType, &exercises, &plan.CreatedAt); err != nil {
		return nil, err
	}

	plan.Type = model.PlanType(planType)
	if err := json.Unmarshal(exercises, &plan.Exercises); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exercises: %w", err)
	}

	return plan, nil
}

// compile-time interface check
var _ WorkoutPlanRepository = (*PostgresWorkoutPlanRepo)(nil)
