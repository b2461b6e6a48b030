package repository

import "errors"

// ErrDuplicateEmail は既に登録済みのメールアドレスでアカウントを
// 作成しようとした場合に返される。
var ErrDuplicateEmail = errors.New("account with this email already exists")
