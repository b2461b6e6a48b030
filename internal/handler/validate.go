package handler

import (
	"net/mail"
	"unicode/utf8"
)

// validateSignup はサインアップ入力を検証し、フィールド別のエラーを返す。
// エラーがない場合はnilを返す。
func validateSignup(name, email, password string) map[string]string {
	details := map[string]string{}

	if utf8.RuneCountInString(name) < 2 {
		details["name"] = "Name must be at least 2 characters"
	}
	if !isValidEmail(email) {
		details["email"] = "Please enter a valid email"
	}
	if utf8.RuneCountInString(password) < 6 {
		details["password"] = "Password must be at least 6 characters"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// validateLogin はログイン入力を検証し、フィールド別のエラーを返す。
func validateLogin(email, password string) map[string]string {
	details := map[string]string{}

	if !isValidEmail(email) {
		details["email"] = "Please enter a valid email"
	}
	if password == "" {
		details["password"] = "Password is required"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// isValidEmail はメールアドレスの形式を検証する。
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
