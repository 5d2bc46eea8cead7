package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/auth/keymanager"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

var (
	keyManagerInstance *keymanager.KeyManager
	keyManagerOnce     sync.Once
)

func getKeyManager() *keymanager.KeyManager {
	keyManagerOnce.Do(func() {
		keyManagerInstance = keymanager.NewKeyManager()
	})
	return keyManagerInstance
}

// SessionClaims is the decoded payload of a session token.
type SessionClaims struct {
	UserID    uuid.UUID
	OrgID     uuid.UUID
	Role      salescommon.Role
	TokenID   string
	ExpiresAt time.Time
}

// CreateSessionToken signs a session token for the user. The token carries
// the user, org and role; the org claim drives schema selection on every
// subsequent request.
func CreateSessionToken(ctx context.Context, user *models.User) (string, time.Time, apperrors.Error) {
	signingKey, err := getKeyManager().GetActiveKey(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	validity, parseErr := config.ParseTokenDuration(config.Config().SessionTokenValidity)
	if parseErr != nil {
		validity = 24 * time.Hour
	}
	expiresAt := time.Now().Add(validity)

	jti, idErr := gonanoid.New()
	if idErr != nil {
		return "", time.Time{}, ErrUnableToGenerateToken.Err(idErr)
	}

	claims := jwt.MapClaims{
		"sub":    user.UserID.String(),
		"org_id": user.OrgID.String(),
		"role":   string(user.Role),
		"jti":    jti,
		"iat":    time.Now().Unix(),
		"exp":    expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, signErr := token.SignedString(signingKey.PrivateKey)
	if signErr != nil {
		log.Ctx(ctx).Error().Err(signErr).Msg("failed to sign session token")
		return "", time.Time{}, ErrUnableToGenerateToken.Err(signErr)
	}
	return signed, expiresAt, nil
}

// ParseSessionToken verifies the signature and expiry of a session token
// and returns its claims.
func ParseSessionToken(ctx context.Context, tokenString string) (*SessionClaims, apperrors.Error) {
	signingKey, err := getKeyManager().GetActiveKey(ctx)
	if err != nil {
		return nil, err
	}

	token, parseErr := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signingKey.PublicKey, nil
	})
	if parseErr != nil {
		if errors.Is(parseErr, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		log.Ctx(ctx).Debug().Err(parseErr).Msg("failed to parse session token")
		return nil, ErrInvalidToken.Err(parseErr)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, uidErr := uuid.Parse(sub)
	if uidErr != nil {
		return nil, ErrInvalidToken.Err(uidErr)
	}

	orgClaim, ok := claims["org_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	orgID, oidErr := uuid.Parse(orgClaim)
	if oidErr != nil {
		return nil, ErrInvalidToken.Err(oidErr)
	}

	roleClaim, _ := claims["role"].(string)
	role := salescommon.Role(roleClaim)
	if !role.IsValid() {
		return nil, ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)
	if isTokenRevoked(jti) {
		return nil, ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	expiresAt := time.Unix(int64(exp), 0)
	if expiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}

	return &SessionClaims{
		UserID:    userID,
		OrgID:     orgID,
		Role:      role,
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}

// isTokenRevoked checks a token's jti against the revocation list.
// Revocation is not wired up yet; logout relies on client-side disposal.
func isTokenRevoked(jti string) bool {
	_ = jti
	return false
}

// RotateSigningKey retires the active signing key and installs a fresh one.
// Existing session tokens stop validating immediately.
func RotateSigningKey(ctx context.Context) (uuid.UUID, apperrors.Error) {
	key, err := getKeyManager().RotateKey(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return key.KeyID, nil
}
