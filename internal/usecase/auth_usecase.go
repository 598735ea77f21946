package usecase

import (
	"context"
	"net/http"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限（cookieも同じ）
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, email string, password string, username string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// Googleが発行したIDトークンの検証の約束。
// 実装はinfra/gateway（google.golang.org/api/idtoken）。
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleIdentity, error)
}

type GoogleIdentity struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

type UserDTO struct {
	ID             int64           `json:"id"`
	Email          string          `json:"email"`
	Username       string          `json:"username"`
	Role           string          `json:"role"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
	Addresses      []model.Address `json:"addresses"`
}

type SignupInput struct {
	Email    string
	Password string
	Username string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	validator AuthValidator
	google    GoogleTokenVerifier
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	validator AuthValidator,
	google GoogleTokenVerifier,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		google:    google,
	}
}

// 会員登録。パスワードは必ずbcryptで保存する。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	if err := u.validator.ValidateSignup(ctx, in.Email, in.Password, in.Username); err != nil {
		return AuthResult{}, err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
	}

	if err := u.users.Create(ctx, user); err != nil {
		//emailはunique
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "User already exists")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResult{User: toUserDTO(user), Token: token}, nil
}

// ログイン。
// 「メールが無い」「パスワード違い」はどちらも同じメッセージで返す（ユーザー列挙防止）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return AuthResult{}, err
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil || user == nil {
		return AuthResult{}, NewHTTPError(http.StatusUnauthorized, "Incorrect password or email")
	}

	//Google専用アカウント（パスワード未設定）はこの経路では入れない
	if user.PasswordHash == "" {
		return AuthResult{}, NewHTTPError(http.StatusUnauthorized, "Incorrect password or email")
	}

	//bcryptの照合は定数時間
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, NewHTTPError(http.StatusUnauthorized, "Incorrect password or email")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResult{User: toUserDTO(user), Token: token}, nil
}

// Googleログイン。
// IDトークンを検証し、emailでローカルユーザーを探す。無ければ作る。
// この経路のユーザーはローカルパスワードを持たない。
func (u *AuthUsecase) GoogleLogin(ctx context.Context, idToken string) (AuthResult, error) {
	if idToken == "" {
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "Google token is required")
	}

	identity, err := u.google.Verify(ctx, idToken)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusUnauthorized, "invalid google token")
	}

	user, err := u.users.FindByEmail(ctx, identity.Email)
	if err == repo.ErrNotFound {
		//初回ログインはユーザー作成
		googleID := identity.Sub
		user = &model.User{
			Email:          identity.Email,
			Username:       identity.Name,
			GoogleID:       &googleID,
			ProfilePicture: identity.Picture,
			Role:           model.RoleUser,
		}
		if err := u.users.Create(ctx, user); err != nil {
			return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	} else if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else if user.GoogleID == nil {
		//既存ユーザーにGoogleIDを紐付け
		if err := u.users.LinkGoogleID(ctx, user.ID, identity.Sub); err != nil {
			return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResult{User: toUserDTO(user), Token: token}, nil
}

// GET /auth/check。トークンのuserが実在するか確認して返す。
func (u *AuthUsecase) Check(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	return toUserDTO(user), nil
}

// jwt発行（HS256）
func (u *AuthUsecase) issueToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}

func toUserDTO(u *model.User) UserDTO {
	addrs := u.Addresses
	if addrs == nil {
		addrs = []model.Address{}
	}
	return UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
		Addresses:      addrs,
	}
}
