// Package password はパスワードの一方向ハッシュ化と検証を提供する。
package password

import "golang.org/x/crypto/bcrypt"

// bcryptCost はbcryptのコストパラメータ。
// 固定値として扱い、実行時には変更しない。
const bcryptCost = 10

// Hash は平文パスワードからbcryptダイジェストを生成する。
// ソルトはbcryptが内部で生成するため、同じ平文でも毎回異なるダイジェストになる。
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify は平文パスワードがダイジェストと一致するかを検証する。
// 不正な形式のダイジェストでもpanicやエラーにはせず、falseを返す。
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
