// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/flexfit/internal/model"
)

// ErrDuplicateEmail は既存ユーザーと同一のemailで作成しようとした場合のエラー。
// usersテーブルのUNIQUE制約違反として検出され、状態は一切変更されない。
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository はユーザーデータの永続化インターフェース。
// 本コアに更新・削除操作は存在しない。
type UserRepository interface {
	// Create はユーザーを作成する。email重複時はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// WorkoutPlanRepository はワークアウトプランの永続化インターフェース。
// 読み取り・更新・削除はすべて(id, userID)の複合フィルタを1回の
// ラウンドトリップで適用する。所有チェックと変更を分離しない。
type WorkoutPlanRepository interface {
	// Create はプランを作成する。
	Create(ctx context.Context, plan *model.WorkoutPlan) error

	// ListByUserID は指定ユーザーが所有するプラン一覧を返す。
	// 所有プランがない場合は空スライスを返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.WorkoutPlan, error)

	// UpdateByOwner は(id, userID)に一致するプランを部分更新し、更新後の
	// レコードを返す。一致する行がない場合はnilを返す（存在しない場合と
	// 他ユーザー所有の場合を区別しない）。
	UpdateByOwner(ctx context.Context, id, userID string, patch model.WorkoutPlanPatch) (*model.WorkoutPlan, error)

	// DeleteByOwner は(id, userID)に一致するプランを削除する。
	// 削除された場合はtrueを返す。
	DeleteByOwner(ctx context.Context, id, userID string) (bool, error)
}
