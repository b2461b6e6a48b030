package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"
	"time"
)

// TokenIssuer はセッショントークンの発行を抽象化する。
// ストアの生存期間内で一意な値を発行できればよく、推測困難性は実装に委ねる。
type TokenIssuer interface {
	// NewToken は新しいセッショントークンを発行する。
	NewToken() (string, error)
}

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// TimestampTokenIssuer はタイムスタンプとランダムな接尾辞からトークンを発行する。
// デフォルト実装で、暗号論的な推測困難性は持たない。
type TimestampTokenIssuer struct{}

// NewTimestampTokenIssuer はTimestampTokenIssuerを生成する。
func NewTimestampTokenIssuer() *TimestampTokenIssuer {
	return &TimestampTokenIssuer{}
}

// NewToken は "session_<ミリ秒>_<ランダム接尾辞>" 形式のトークンを発行する。
func (i *TimestampTokenIssuer) NewToken() (string, error) {
	suffix := make([]byte, 11)
	for j := range suffix {
		suffix[j] = suffixChars[mathrand.Intn(len(suffixChars))]
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix), nil
}

// RandomTokenIssuer はCSPRNGから32バイトのトークンを発行する。
// 本番向けの差し替え実装。
type RandomTokenIssuer struct{}

// NewRandomTokenIssuer はRandomTokenIssuerを生成する。
func NewRandomTokenIssuer() *RandomTokenIssuer {
	return &RandomTokenIssuer{}
}

// NewToken は暗号的に安全なランダムトークンを発行する。
func (i *RandomTokenIssuer) NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// compile-time interface checks
var (
	_ TokenIssuer = (*TimestampTokenIssuer)(nil)
	_ TokenIssuer = (*RandomTokenIssuer)(nil)
)
