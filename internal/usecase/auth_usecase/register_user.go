package auth

import (
	"context"
	"errors"
	"strings"

	"commerce/internal/domain/model"
	"commerce/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// 競合
	ErrUserNameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already in use")
)

// 入力チェックの約束。validatorパッケージが実装する
type Validator interface {
	ValidateRegister(ctx context.Context, username string, email string, password string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 会員登録の入力。Rolesが空ならUSER
type RegisterUserInput struct {
	UserName string
	Email    string
	Password string
	Roles    []string
}

type RegisterUserOutput struct {
	User model.User
}

// RegisterUserUsecaseは会員登録の処理
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	hasher    PasswordHasher
	validator Validator
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	hasher PasswordHasher,
	validator Validator,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		hasher:    hasher,
		validator: validator,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.UserName)
	email := strings.TrimSpace(in.Email)

	if err := u.validator.ValidateRegister(ctx, username, email, in.Password); err != nil {
		return out, ErrInvalidInput
	}

	//username/emailの重複チェック
	taken, err := u.userRepo.ExistsByUserName(ctx, username)
	if err != nil {
		return out, err
	}
	if taken {
		return out, ErrUserNameTaken
	}

	used, err := u.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return out, err
	}
	if used {
		return out, ErrEmailTaken
	}

	//パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	//ロール解決。未知のロール名は拒否
	roleNames := in.Roles
	if len(roleNames) == 0 {
		roleNames = []string{string(model.RoleUser)}
	}
	roles := make([]model.Role, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := u.roleRepo.FindByName(ctx, model.RoleName(strings.ToUpper(strings.TrimSpace(name))))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return out, ErrInvalidInput
			}
			return out, err
		}
		roles = append(roles, role)
	}

	user := &model.User{
		UserName:     username,
		Email:        email,
		PasswordHash: hashed,
		Roles:        roles,
	}

	//DBへ保存。ユニーク制約違反は競合として返す
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrUserNameTaken
		}
		return out, err
	}

	//返すときはハッシュを空にして漏洩防止
	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	return out, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
