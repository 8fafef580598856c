package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/logx"
	auth "storefront/internal/usecase/auth_usecase"
)

type AuthHandler struct {
	registerUC *auth.RegisterSellerUsecase // 出品者登録usecase
	loginUC    *auth.LoginUsecase          // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(registerUC *auth.RegisterSellerUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
}

// /api/auth/register のリクエストボディ。
type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Name      string `json:"name" validate:"required,min=2"`
	StoreName string `json:"storeName" validate:"required,min=2"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// /api/auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string         `json:"message"`
	Seller  auth.SellerDTO `json:"seller"`
}

type loginResponse struct {
	Message string `json:"message"`
	auth.LoginOutput
}

// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterSellerInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		StoreName: req.StoreName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if errors.Is(err, auth.ErrEmailAlreadyExists) {
		return badRequest(c, "Seller with this email already exists")
	}
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return badRequest(c, "Password must be at most 72 bytes")
	}
	if err != nil {
		logx.Error().Err(err).Msg("register seller failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	return c.JSON(http.StatusCreated, registerResponse{Message: "Seller registered successfully", Seller: out})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	}
	if err != nil {
		logx.Error().Err(err).Msg("login failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", LoginOutput: out})
}
