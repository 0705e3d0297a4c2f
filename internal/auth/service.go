// Package auth はアカウント登録とログインのドメインロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/flexfit/internal/model"
	"github.com/hitoshi/flexfit/internal/password"
	"github.com/hitoshi/flexfit/internal/repository"
)

// TokenIssuer はアクセストークンの発行インターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service は登録・ログインのサービス層。
type Service struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, tokens TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register は新規アカウントを作成し、アクセストークンを発行する。
// メールアドレスの重複はmodel.NewDuplicateEmailError()として返す。
func (s *Service) Register(ctx context.Context, email, plainPassword, name string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if err := validateRegisterInput(email, plainPassword, name); err != nil {
		return "", nil, err
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return "", nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", nil, model.NewDuplicateEmailError()
		}
		return "", nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("新規アカウントを作成しました",
		slog.String("user_id", user.ID),
	)

	return token, user, nil
}

// Login はメールアドレスとパスワードを検証し、アクセストークンを発行する。
// メールアドレス不明とパスワード不一致は区別せず、
// どちらもmodel.NewInvalidCredentialsError()を返す。
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return "", nil, model.NewValidationError("メールアドレスとパスワードを入力してください")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		// アカウントの存在有無を漏らさないため、パスワード不一致と同じ応答を返す
		return "", nil, model.NewInvalidCredentialsError()
	}

	if !password.Verify(plainPassword, user.PasswordHash) {
		return "", nil, model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("ログインに成功しました",
		slog.String("user_id", user.ID),
	)

	return token, user, nil
}

// validateRegisterInput は登録入力の必須チェックを行う。
func validateRegisterInput(email, plainPassword, name string) error {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if plainPassword == "" {
		missing = append(missing, "password")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return model.NewValidationError(
			fmt.Sprintf("必須項目が不足しています: %s", strings.Join(missing, ", ")))
	}
	if !strings.Contains(email, "@") {
		return model.NewValidationError("メールアドレスの形式が不正です")
	}
	return nil
}
