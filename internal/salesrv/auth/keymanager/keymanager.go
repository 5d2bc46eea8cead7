// Package keymanager owns the ed25519 key pair session tokens are signed
// with. The active key lives in public.signing_keys; the first caller after
// boot creates one if none exists.
package keymanager

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// SigningKey is the in-memory form of the active key pair.
type SigningKey struct {
	KeyID      uuid.UUID
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

// KeyManager caches the active signing key.
type KeyManager struct {
	activeKey *SigningKey
	mu        sync.RWMutex
}

func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// GetActiveKey returns the active signing key, loading or creating it on
// first use.
func (km *KeyManager) GetActiveKey(ctx context.Context) (*SigningKey, apperrors.Error) {
	km.mu.RLock()
	key := km.activeKey
	km.mu.RUnlock()
	if key != nil {
		return key, nil
	}
	return km.retrieveOrCreateKey(ctx)
}

func (km *KeyManager) retrieveOrCreateKey(ctx context.Context) (*SigningKey, apperrors.Error) {
	km.mu.Lock()
	defer km.mu.Unlock()

	if km.activeKey != nil {
		return km.activeKey, nil
	}

	key, err := db.DB(ctx).GetActiveSigningKey(ctx)
	if err != nil && !errors.Is(err, dberror.ErrNotFound) {
		return nil, err
	}

	if key == nil {
		pub, priv, genErr := ed25519.GenerateKey(rand.Reader)
		if genErr != nil {
			log.Ctx(ctx).Error().Err(genErr).Msg("unable to generate signing key")
			return nil, apperrors.New("unable to generate signing key").Err(genErr)
		}
		key = &models.SigningKey{
			KeyID:      uuid.New(),
			PublicKey:  pub,
			PrivateKey: priv,
			IsActive:   true,
		}
		if err := db.DB(ctx).CreateSigningKey(ctx, key); err != nil {
			// Another instance may have won the race; re-read.
			if errors.Is(err, dberror.ErrAlreadyExists) {
				key, err = db.DB(ctx).GetActiveSigningKey(ctx)
				if err != nil {
					return nil, err
				}
			} else {
				log.Ctx(ctx).Error().Err(err).Msg("unable to store signing key")
				return nil, err
			}
		}
	}

	km.activeKey = &SigningKey{
		KeyID:      key.KeyID,
		PrivateKey: ed25519.PrivateKey(key.PrivateKey),
		PublicKey:  ed25519.PublicKey(key.PublicKey),
	}
	return km.activeKey, nil
}

// RotateKey deactivates the current key and creates a fresh one. Sessions
// signed with the old key stop validating, so rotation forces re-login.
func (km *KeyManager) RotateKey(ctx context.Context) (*SigningKey, apperrors.Error) {
	km.mu.Lock()
	defer km.mu.Unlock()

	// The active key may live only in the database, e.g. when rotating from
	// the CLI. Deactivate whichever key the store considers active.
	current, err := db.DB(ctx).GetActiveSigningKey(ctx)
	if err != nil && !errors.Is(err, dberror.ErrNotFound) {
		return nil, err
	}
	if current != nil {
		if err := db.DB(ctx).UpdateSigningKeyActive(ctx, current.KeyID, false); err != nil {
			return nil, err
		}
	}
	km.activeKey = nil

	pub, priv, genErr := ed25519.GenerateKey(rand.Reader)
	if genErr != nil {
		return nil, apperrors.New("unable to generate signing key").Err(genErr)
	}
	key := &models.SigningKey{
		KeyID:      uuid.New(),
		PublicKey:  pub,
		PrivateKey: priv,
		IsActive:   true,
	}
	if err := db.DB(ctx).CreateSigningKey(ctx, key); err != nil {
		return nil, err
	}
	km.activeKey = &SigningKey{
		KeyID:      key.KeyID,
		PrivateKey: priv,
		PublicKey:  pub,
	}
	return km.activeKey, nil
}
