package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseはinterfaceを依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// ざっくりしたemail形式チェック（厳密なRFC検証はしない）
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(ctx context.Context, email string, password string, username string) error {
	email = strings.TrimSpace(email)

	//必須チェック
	if email == "" || password == "" || strings.TrimSpace(username) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	if !emailRe.MatchString(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	//パスワード最低文字数（8）
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	//email重複チェック
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "User already exists")
	}

	return nil
}

// ログインの入力を検証。
// 存在チェックはここではしない（usecase側で1つのメッセージに潰す）。
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	return nil
}
