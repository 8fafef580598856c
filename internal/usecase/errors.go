package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/logx"
	"storefront/internal/validator"
)

const msgInternal = "Internal server error"

type HTTPError struct {
	Status  int
	Message string
	Details any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewHTTPErrorWithDetails(status int, message string, details any) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Details: details,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 500はログに原因を残して汎用メッセージを返す
func internalError(err error, op string) error {
	logx.Error().Err(err).Str("op", op).Msg("unexpected failure")
	return NewHTTPError(http.StatusInternalServerError, msgInternal)
}

// go-playgroundの検証エラーを400に
func invalidInput(err error) error {
	return NewHTTPErrorWithDetails(http.StatusBadRequest, "Invalid input data", validator.Details(err))
}

func validateStruct(in any) error {
	if err := validator.Struct(in); err != nil {
		return invalidInput(err)
	}
	return nil
}
