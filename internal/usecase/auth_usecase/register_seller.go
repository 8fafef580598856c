package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// 出品者登録の入力
type RegisterSellerInput struct {
	Email     string
	Password  string
	Name      string
	StoreName string
	Phone     string
	Address   string
}

// パスワードを含まない出品者情報
type SellerDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	StoreName string    `json:"storeName"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toSellerDTO(s *model.Seller) SellerDTO {
	return SellerDTO{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		StoreName: s.StoreName,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}

// 競合
var ErrEmailAlreadyExists = errors.New("email already exists")

// bcryptは72バイトを超える入力を受け付けない
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

const maxPasswordBytes = 72

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type RegisterSellerUsecase struct {
	sellers repository.SellerRepository
	hasher  PasswordHasher
	clock   Clock
}

// DI
func NewRegisterSellerUsecase(sellers repository.SellerRepository, hasher PasswordHasher, clock Clock) *RegisterSellerUsecase {
	return &RegisterSellerUsecase{sellers: sellers, hasher: hasher, clock: clock}
}

// 出品者登録。形式チェックはhandler側のvalidateタグで済んでいる前提
func (u *RegisterSellerUsecase) Execute(ctx context.Context, in RegisterSellerInput) (SellerDTO, error) {
	email := normalizeEmail(in.Email)

	//マルチバイトだとvalidateタグのmaxを通り抜ける
	if len(in.Password) > maxPasswordBytes {
		return SellerDTO{}, ErrPasswordTooLong
	}

	// email重複チェック
	existing, err := u.sellers.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return SellerDTO{}, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return SellerDTO{}, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return SellerDTO{}, err
	}

	now := u.clock.Now()
	seller := &model.Seller{
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(in.Name),
		StoreName:    strings.TrimSpace(in.StoreName),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.sellers.Create(ctx, seller); err != nil {
		//同時登録でunique制約に当たった場合
		if errors.Is(err, repository.ErrDuplicate) {
			return SellerDTO{}, ErrEmailAlreadyExists
		}
		return SellerDTO{}, err
	}

	return toSellerDTO(seller), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
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

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
