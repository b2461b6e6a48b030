// Package model はドメインモデルを定義する。
package model

import "time"

// Account はサインアップ済みのユーザーアカウントを表す。
// メールアドレスを一意キーとして登録され、作成後は変更・削除されない。
type Account struct {
	ID        string
	Name      string
	Email     string
	Password  string // 平文で保持する（照合ロジックはCredentialVerifierが抽象化する）
	CreatedAt time.Time
}

// Session はログイン中のセッションを表す。
// トークンを一意キーとして保持され、ログアウトまたはプロセス再起動で消える。
// Cookieには1週間のMax-Ageを広告するが、サーバー側での期限掃除は行わない。
type Session struct {
	Token     string
	UserID    string
	Email     string
	Name      string
	CreatedAt time.Time
}

// UserSummary は認証済みユーザーの公開情報を表す。
// セッション解決の結果としてリクエスト単位で導出され、永続化しない。
type UserSummary struct {
	ID    string
	Name  string
	Email string
}
