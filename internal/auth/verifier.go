package auth

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier はパスワードの保存形式への変換と照合を抽象化する。
// 認証フローを変えずに、照合方式だけを差し替えるためのインターフェース。
type CredentialVerifier interface {
	// Hash はパスワードを保存形式に変換する。
	Hash(password string) (string, error)
	// Verify は保存済みの値とパスワードを照合する。
	Verify(stored, password string) bool
}

// PlainVerifier はパスワードを平文のまま保存し、完全一致で照合する。
// デフォルト実装。AUTH_BCRYPTが有効な環境ではBcryptVerifierに差し替わる。
type PlainVerifier struct{}

// NewPlainVerifier はPlainVerifierを生成する。
func NewPlainVerifier() *PlainVerifier {
	return &PlainVerifier{}
}

// Hash はパスワードをそのまま返す。
func (v *PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

// Verify は完全一致で照合する。
func (v *PlainVerifier) Verify(stored, password string) bool {
	return stored == password
}

// BcryptVerifier はbcryptでハッシュ化して保存・照合する。
// 本番向けの差し替え実装。
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier はBcryptVerifierを生成する。
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Hash はパスワードをbcryptハッシュに変換する。
func (v *BcryptVerifier) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify は保存済みハッシュとパスワードを照合する。
func (v *BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// compile-time interface checks
var (
	_ CredentialVerifier = (*PlainVerifier)(nil)
	_ CredentialVerifier = (*BcryptVerifier)(nil)
)
