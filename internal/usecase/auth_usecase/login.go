package auth

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type LoginSeller struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	StoreName string `json:"storeName"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Seller LoginSeller `json:"seller"`
	Token  string      `json:"token"`
	//秒
	ExpiresIn int `json:"expiresIn"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(seller *model.Seller, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	sellers  repository.SellerRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	sellers repository.SellerRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		sellers:  sellers,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	seller, err := u.sellers.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, seller.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(seller, now)
	if err != nil {
		return out, err
	}

	out.Seller = LoginSeller{
		ID:        seller.ID,
		Email:     seller.Email,
		Name:      seller.Name,
		StoreName: seller.StoreName,
	}
	out.Token = token
	out.ExpiresIn = int(exp.Sub(now).Seconds())
	return out, nil
}
