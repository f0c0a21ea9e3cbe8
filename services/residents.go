package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"smartpay/backend/models"
	"smartpay/backend/store"
)

const minPasswordLength = 6

// ResidentProfile is the household data collected at registration.
type ResidentProfile struct {
	HouseholdName string `json:"householdName"`
	HouseBlock    string `json:"houseBlock"`
}

// RegisterInput is a local sign-up request.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ResidentProfile
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Identity  models.Identity  `json:"identity"`
	Resident  *models.Resident `json:"resident,omitempty"`
	Notice    string           `json:"notice,omitempty"`
}

type ResidentService struct {
	store  store.RecordStore
	tokens *TokenIssuer
	logger *zap.Logger
}

// NewResidentService accepts a nil store and a nil issuer; local registration and
// login then fail.
func NewResidentService(rs store.RecordStore, tokens *TokenIssuer, logger *zap.Logger) *ResidentService {
	return &ResidentService{store: rs, tokens: tokens, logger: logger}
}

// Get returns the caller's resident row.
func (s *ResidentService) Get(ctx context.Context, uid string) (*models.Resident, error) {
	if s.store == nil {
		return nil, unavailable()
	}
	r, err := s.store.GetResident(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return r, err
}

// Ensure creates the resident row for id. When the row already exists it returns the
// stored row together with ErrAlreadyRegistered, which callers report and move past.
func (s *ResidentService) Ensure(ctx context.Context, id models.Identity, profile ResidentProfile) (*models.Resident, error) {
	if s.store == nil {
		return nil, unavailable()
	}
	if id.UID == "" || strings.TrimSpace(profile.HouseholdName) == "" || strings.TrimSpace(profile.HouseBlock) == "" {
		return nil, NewUserError("Nama KK dan blok rumah wajib diisi.", ErrInvalidInput)
	}

	r := models.Resident{
		ID:            id.UID,
		HouseholdName: strings.TrimSpace(profile.HouseholdName),
		HouseBlock:    strings.TrimSpace(profile.HouseBlock),
		Email:         id.Email,
	}
	err := s.store.InsertResident(ctx, r)
	if errors.Is(err, store.ErrDuplicate) {
		existing, getErr := s.store.GetResident(ctx, id.UID)
		if getErr != nil {
			s.logger.Warn("Resident exists but could not be loaded", zap.String("uid", id.UID), zap.Error(getErr))
			existing = &r
		}
		return existing, NewUserError(MsgAlreadyRegistered, ErrAlreadyRegistered)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register resident: %w", err)
	}

	s.logger.Info("Resident registered", zap.String("uid", r.ID), zap.String("block", r.HouseBlock))
	return &r, nil
}

// Register creates a local account and its resident row, then signs the caller in.
func (s *ResidentService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if s.store == nil {
		return nil, unavailable()
	}
	if s.tokens == nil {
		return nil, NewUserError("Pendaftaran lokal tidak aktif.", ErrForbidden)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewUserError("Format email tidak valid.", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, NewUserError("Password minimal 6 karakter.", ErrInvalidInput)
	}
	if strings.TrimSpace(in.HouseholdName) == "" || strings.TrimSpace(in.HouseBlock) == "" {
		return nil, NewUserError("Nama KK dan blok rumah wajib diisi.", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		Email:         email,
		UID:           uuid.NewString(),
		PasswordHash:  string(hash),
		HouseholdName: strings.TrimSpace(in.HouseholdName),
		HouseBlock:    strings.TrimSpace(in.HouseBlock),
	}
	if err := s.store.InsertAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, NewUserError(MsgEmailTaken, ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	id := models.Identity{UID: account.UID, Email: email}
	result, err := s.issue(id)
	if err != nil {
		return nil, err
	}

	resident, err := s.Ensure(ctx, id, in.ResidentProfile)
	if errors.Is(err, ErrAlreadyRegistered) {
		result.Notice = MsgAlreadyRegistered
	} else if err != nil {
		return nil, err
	}
	result.Resident = resident
	return result, nil
}

// Login checks a local account's password and issues a session token. A missing
// resident row is recreated from the profile stored at sign-up.
func (s *ResidentService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if s.store == nil {
		return nil, unavailable()
	}
	if s.tokens == nil {
		return nil, NewUserError("Login lokal tidak aktif.", ErrForbidden)
	}

	account, err := s.store.GetAccount(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, NewUserError(MsgInvalidCredentials, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserError(MsgInvalidCredentials, ErrInvalidCredentials)
	}

	id := models.Identity{UID: account.UID, Email: account.Email}
	result, err := s.issue(id)
	if err != nil {
		return nil, err
	}

	r, err := s.store.GetResident(ctx, account.UID)
	switch {
	case err == nil:
		result.Resident = r
	case errors.Is(err, store.ErrNotFound) && account.HouseholdName != "" && account.HouseBlock != "":
		profile := ResidentProfile{HouseholdName: account.HouseholdName, HouseBlock: account.HouseBlock}
		r, err := s.Ensure(ctx, id, profile)
		if errors.Is(err, ErrAlreadyRegistered) {
			result.Notice = MsgAlreadyRegistered
		} else if err != nil {
			return nil, err
		}
		result.Resident = r
	case !errors.Is(err, store.ErrNotFound):
		s.logger.Warn("Failed to load resident at login", zap.String("uid", account.UID), zap.Error(err))
	}
	return result, nil
}

func (s *ResidentService) issue(id models.Identity) (*AuthResult, error) {
	token, expires, err := s.tokens.Issue(id)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expires, Identity: id}, nil
}
