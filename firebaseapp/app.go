// Package firebaseapp builds the Firebase Admin SDK app shared by token
// verification and proof storage.
package firebaseapp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"smartpay/backend/config"
)

// ErrNoCredentials is returned when no credentials source is configured and
// application default credentials were not requested.
var ErrNoCredentials = errors.New("no Firebase credentials configured")

// CredentialOption picks the credentials source, in order: inline JSON, base64
// JSON, credentials file. It returns nil when none is set.
func CredentialOption(cfg config.FirebaseConfig) (option.ClientOption, error) {
	switch {
	case cfg.CredentialsJSON != "":
		return option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)), nil
	case cfg.CredentialsBase64 != "":
		credBytes, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("error decoding base64 Firebase credentials: %w", err)
		}
		return option.WithCredentialsJSON(credBytes), nil
	case cfg.CredentialsFile != "":
		return option.WithCredentialsFile(cfg.CredentialsFile), nil
	}
	return nil, nil
}

// New initializes the Firebase app. Without explicit credentials it falls back to
// application default credentials when a project ID is set, and fails otherwise.
func New(ctx context.Context, cfg config.FirebaseConfig, logger *zap.Logger) (*firebase.App, error) {
	opt, err := CredentialOption(cfg)
	if err != nil {
		return nil, err
	}

	fbConfig := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	var opts []option.ClientOption
	if opt != nil {
		opts = append(opts, opt)
	} else if cfg.ProjectID == "" {
		return nil, ErrNoCredentials
	} else {
		logger.Info("No Firebase credentials configured, using application default credentials",
			zap.String("project", cfg.ProjectID))
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized", zap.String("project", cfg.ProjectID))
	return app, nil
}
