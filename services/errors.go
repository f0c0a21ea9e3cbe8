package services

import (
	"errors"
	"fmt"
)

// Service errors. Handlers map them to HTTP statuses.
var (
	ErrUnavailable        = errors.New("record store not configured")
	ErrIncomplete         = errors.New("incomplete submission")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUploadFailed       = errors.New("proof upload failed")
	ErrAlreadyRegistered  = errors.New("resident already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)

// User-facing messages.
const (
	MsgIncomplete         = "Lengkapi semua data, pilih jenis pembayaran, dan upload file bukti!"
	MsgUploadFailed       = "Gagal upload bukti pembayaran."
	MsgAlreadyRegistered  = "Data warga sudah terdaftar."
	MsgEmailTaken         = "Email sudah terdaftar. Silakan gunakan email lain atau login."
	MsgInvalidCredentials = "Email atau password salah."
	MsgUnavailable        = "Layanan data belum dikonfigurasi."
)

// UserError carries a message safe to show to the user alongside the cause.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a user-facing message.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the user-facing message in err's chain, or fallback.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return fallback
}

func unavailable() error {
	return NewUserError(MsgUnavailable, ErrUnavailable)
}
