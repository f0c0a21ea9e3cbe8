package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"smartpay/backend/config"
	"smartpay/backend/models"
	"smartpay/backend/store"
)

// AuthorizationPolicy decides whether an authenticated caller may use the admin views.
type AuthorizationPolicy interface {
	IsAdmin(ctx context.Context, id models.Identity) bool
}

// FlagPolicy reads the resident's is_admin column.
type FlagPolicy struct {
	store  store.RecordStore
	logger *zap.Logger
}

func NewFlagPolicy(rs store.RecordStore, logger *zap.Logger) *FlagPolicy {
	return &FlagPolicy{store: rs, logger: logger}
}

// IsAdmin is false when the resident is missing or the lookup fails.
func (p *FlagPolicy) IsAdmin(ctx context.Context, id models.Identity) bool {
	if p.store == nil || id.UID == "" {
		return false
	}
	r, err := p.store.GetResident(ctx, id.UID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn("Admin lookup failed", zap.String("uid", id.UID), zap.Error(err))
		}
		return false
	}
	return r.IsAdmin
}

// AllowListPolicy grants admin to a fixed set of emails, compared case-insensitively.
type AllowListPolicy struct {
	emails map[string]struct{}
}

func NewAllowListPolicy(emails []string) *AllowListPolicy {
	p := &AllowListPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			p.emails[e] = struct{}{}
		}
	}
	return p
}

func (p *AllowListPolicy) IsAdmin(_ context.Context, id models.Identity) bool {
	if id.Email == "" {
		return false
	}
	_, ok := p.emails[strings.ToLower(id.Email)]
	return ok
}

// NewPolicy builds the policy named by auth.admin_policy.
func NewPolicy(cfg config.AuthConfig, rs store.RecordStore, logger *zap.Logger) (AuthorizationPolicy, error) {
	switch cfg.AdminPolicy {
	case config.AdminPolicyFlag, "":
		return NewFlagPolicy(rs, logger), nil
	case config.AdminPolicyAllowList:
		return NewAllowListPolicy(cfg.AdminEmails), nil
	}
	return nil, fmt.Errorf("unknown admin policy %q", cfg.AdminPolicy)
}
