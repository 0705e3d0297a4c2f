// Package token は署名付き時限ベアラートークンの発行と検証を提供する。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken は検証に失敗したトークンを表す。
// 改ざん・期限切れ・形式不正のいずれもこのエラーに集約する
// （呼び出し側に失敗理由を区別させない）。
var ErrInvalidToken = errors.New("invalid token")

// Claims はJWTに埋め込むクレーム。標準のRegisteredClaimsに
// ユーザーIDを追加したもの。
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Service はHS256署名付きJWTの発行・検証サービス。
// 署名鍵とTTLは起動時に設定され、実行時には変更されない。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はServiceを生成する。
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue は指定ユーザーIDに紐づくトークンを発行する。
// 有効期限は発行時刻 + TTLで固定される。登録・ログインの両方で
// 同一の発行経路を使用する。
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(s.secret)
}

// Verify はトークンを検証し、埋め込まれたユーザーIDを返す。
// 署名検証が先に行われ、その後に有効期限が確認される。
// いかなる失敗もErrInvalidTokenとして返す。
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
