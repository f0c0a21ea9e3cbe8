package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"smartpay/backend/blob"
	"smartpay/backend/config"
	"smartpay/backend/database"
	"smartpay/backend/firebaseapp"
	"smartpay/backend/middleware"
	"smartpay/backend/migrations"
	"smartpay/backend/models"
	"smartpay/backend/services"
	"smartpay/backend/store"
)

// app owns the process-wide collaborators built from configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	db      *sql.DB
	dialect database.Dialect
	fb      *firebase.App
}

func newApp(cfg *config.Config, logger *zap.Logger) *app {
	return &app{cfg: cfg, logger: logger}
}

func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		}
	}
}

// openDatabase connects and migrates. Seeding is optional.
func (a *app) openDatabase(seed bool) error {
	db, dialect, err := database.Open(a.cfg.DatabaseSettings(), a.logger)
	if err != nil {
		return err
	}
	a.db, a.dialect = db, dialect

	if err := migrations.Run(db, dialect, a.logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if seed {
		if err := migrations.Seed(db, dialect, a.logger); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return nil
}

func (a *app) firebaseApp(ctx context.Context) (*firebase.App, error) {
	if a.fb != nil {
		return a.fb, nil
	}
	fb, err := firebaseapp.New(ctx, a.cfg.Firebase, a.logger)
	if err != nil {
		return nil, err
	}
	a.fb = fb
	return fb, nil
}

func (a *app) blobStore(ctx context.Context) (blob.Store, error) {
	switch a.cfg.Storage.Backend {
	case config.StorageFirebase:
		fb, err := a.firebaseApp(ctx)
		if err != nil {
			return nil, err
		}
		bucket, err := blob.NewBucket(ctx, fb, a.cfg.Firebase.StorageBucket)
		if err != nil {
			return nil, err
		}
		return bucket, nil
	default:
		dir, err := blob.NewDir(a.cfg.Storage.LocalDir, a.cfg.Storage.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return dir, nil
	}
}

// recordStore returns nil when the database cannot be opened; services then serve
// empty reads and refuse writes.
func (a *app) recordStore(ctx context.Context) (store.RecordStore, error) {
	if err := a.openDatabase(false); err != nil {
		if a.db != nil {
			// connected but the schema is unusable
			return nil, err
		}
		a.logger.Error("Record store unavailable, running without a backend", zap.Error(err))
		return nil, nil
	}

	blobs, err := a.blobStore(ctx)
	if err != nil {
		a.logger.Error("Proof storage unavailable, uploads will fail", zap.Error(err))
		return store.NewSQLStore(a.db, a.dialect, nil), nil
	}
	return store.NewSQLStore(a.db, a.dialect, blobs), nil
}

func (a *app) tokenIssuer() *services.TokenIssuer {
	if a.cfg.Auth.Provider != config.ProviderLocal {
		return nil
	}
	return services.NewTokenIssuer(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL)
}

// verifier returns nil for the none provider, which makes every request run as
// the development identity.
func (a *app) verifier(ctx context.Context, tokens *services.TokenIssuer) (middleware.IdentityVerifier, error) {
	switch a.cfg.Auth.Provider {
	case config.ProviderFirebase:
		fb, err := a.firebaseApp(ctx)
		if err != nil {
			return nil, err
		}
		fv, err := middleware.NewFirebaseVerifier(ctx, fb)
		if err != nil {
			return nil, err
		}
		return fv, nil
	case config.ProviderLocal:
		if tokens == nil {
			return nil, errors.New("local auth provider needs a token issuer")
		}
		return middleware.NewJWTVerifier(tokens), nil
	}
	a.logger.Warn("Authentication disabled, every request runs as the development user",
		zap.String("uid", a.cfg.Auth.DevUserID))
	return nil, nil
}

func (a *app) devIdentity() models.Identity {
	return models.Identity{UID: a.cfg.Auth.DevUserID, Email: a.cfg.Auth.DevEmail}
}
