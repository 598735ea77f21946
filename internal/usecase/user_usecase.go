package usecase

import (
	"context"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

// UserUsecase はプロフィールと住所帳の業務ロジック。
type UserUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	addresses repo.AddressRepository
}

func NewUserUsecase(tx repo.TransactionManager, users repo.UserRepository, addresses repo.AddressRepository) *UserUsecase {
	return &UserUsecase{tx: tx, users: users, addresses: addresses}
}

// GET /users/own
func (u *UserUsecase) GetOwnProfile(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(user), nil
}

type AddressInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	PinCode string `json:"pinCode"`
	Phone   string `json:"phone"`
}

type UpdateProfileInput struct {
	Username       *string
	ProfilePicture *string
	//nilなら住所帳はそのまま。non-nilなら丸ごと置き換え（追加・編集・削除すべてこの形で来る）。
	Addresses []AddressInput
}

// PATCH /users/:id。本人のみ。role・パスワードはこの経路では変えられない。
// 住所帳の置き換えは削除→再作成を1トランザクションで行う。
// 途中で失敗したら元の住所帳がそのまま残る。
func (u *UserUsecase) UpdateProfile(ctx context.Context, actorUserID int64, targetUserID int64, in UpdateProfileInput) (UserDTO, error) {
	if actorUserID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	//他人のプロフィールは触れない
	if actorUserID != targetUserID {
		return UserDTO{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//入力検証は書き込みを始める前に全部済ませる
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "username required")
		}
		user.Username = name
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}
	for _, a := range in.Addresses {
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Street) == "" || strings.TrimSpace(a.City) == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid address")
		}
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.Username != nil || in.ProfilePicture != nil {
			if err := r.Users().Update(ctx, user); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//住所帳の置き換え
		if in.Addresses != nil {
			existing, err := r.Addresses().ListByUserID(ctx, targetUserID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, a := range existing {
				if err := r.Addresses().Delete(ctx, a.ID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
			for _, a := range in.Addresses {
				if _, err := r.Addresses().Create(ctx, model.Address{
					UserID:  targetUserID,
					Name:    a.Name,
					Email:   a.Email,
					Street:  a.Street,
					City:    a.City,
					State:   a.State,
					PinCode: a.PinCode,
					Phone:   a.Phone,
				}); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}
		return nil
	})
	if err != nil {
		return UserDTO{}, err
	}

	//更新後を取り直して返す
	updated, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(updated), nil
}
