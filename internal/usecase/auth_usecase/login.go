package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"commerce/internal/repository"
)

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, email string, roles []string, now time.Time) (token string, expiresAt time.Time, err error)
}

// handlerからusecaseに渡す入力
type LoginInput struct {
	UserName string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	ID       int64    `json:"id"`
	Token    string   `json:"token"`
	UserName string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type LoginUsecase struct {
	userRepo  repository.UserRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	validator Validator
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	validator Validator,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		verifier:  verifier,
		issuer:    issuer,
		validator: validator,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	username := strings.TrimSpace(in.UserName)
	if err := u.validator.ValidateLogin(ctx, username, in.Password); err != nil {
		return out, ErrInvalidCredentials
	}

	//usernameでユーザー取得
	user, err := u.userRepo.FindByUserName(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r.Name))
	}

	//AccessToken発行
	token, _, err := u.issuer.Issue(user.ID, user.Email, roles, time.Now())
	if err != nil {
		return out, err
	}

	out = LoginOutput{
		ID:       user.ID,
		Token:    token,
		UserName: user.UserName,
		Email:    user.Email,
		Roles:    roles,
	}
	return out, nil
}
