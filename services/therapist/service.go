package therapist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"santai/models"
	"santai/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenDuration is the lifetime of issued session tokens.
const tokenDuration = 72 * time.Hour

// ErrInvalidCredentials is returned when the email/password pair does not
// match an account. The message deliberately does not distinguish an
// unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Register creates a new therapist account and issues a session token.
func (svc *DefaultTherapistService) Register(name, email, whatsApp, password string) (*AuthResponse, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}

	existing, err := svc.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	record := &models.Therapist{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		WhatsApp:     whatsApp,
		PasswordHash: string(hash),
		Status:       "available",
	}
	if err := svc.Repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create therapist: %w", err)
	}

	token, err := svc.issueSession(record)
	if err != nil {
		return nil, err
	}

	zap.L().Info("therapist registered", zap.String("therapistId", record.ID))
	return &AuthResponse{Therapist: record, Token: token}, nil
}

// SignIn authenticates a therapist and issues a fresh session token,
// invalidating any previous session.
func (svc *DefaultTherapistService) SignIn(email, password string) (*AuthResponse, error) {
	record, err := svc.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if record == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Invalidate the previous session's cache entry before rotating.
	if record.TokenHash != "" {
		svc.evictAuthCache(record.TokenHash)
	}

	token, err := svc.issueSession(record)
	if err != nil {
		return nil, err
	}

	zap.L().Info("therapist signed in", zap.String("therapistId", record.ID))
	return &AuthResponse{Therapist: record, Token: token}, nil
}

// SignOut clears the stored token hash and evicts the auth cache entry so
// the old token stops validating immediately.
func (svc *DefaultTherapistService) SignOut(therapistID string) error {
	record, err := svc.Repo.GetByIDWithProjection(therapistID, bson.M{"id": 1, "token_hash": 1})
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	if err := svc.Repo.UpdateSetDocument(therapistID, bson.M{
		"token_hash": "",
		"updated_at": time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if record.TokenHash != "" {
		svc.evictAuthCache(record.TokenHash)
	}
	return nil
}

// UpdateFCMToken stores the device token used for push notifications.
func (svc *DefaultTherapistService) UpdateFCMToken(therapistID, fcmToken string) error {
	if err := svc.Repo.UpdateSetDocument(therapistID, bson.M{
		"fcm_token":  fcmToken,
		"updated_at": time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}
	return nil
}

// GetByID fetches a therapist profile.
func (svc *DefaultTherapistService) GetByID(therapistID string) (*models.Therapist, error) {
	return svc.Repo.GetByID(therapistID)
}

// issueSession generates a JWT, persists its hash and primes the auth
// cache. Cache priming is best-effort.
func (svc *DefaultTherapistService) issueSession(record *models.Therapist) (string, error) {
	token, err := utils.GenerateToken(record.ID, record.Email, tokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := svc.Repo.UpdateSetDocument(record.ID, bson.M{
		"token_hash": tokenHash,
		"updated_at": time.Now(),
	}); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	record.TokenHash = tokenHash

	// Cache entries are keyed by token hash, matching the middleware lookup.
	if svc.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := utils.AuthCachePrefix + tokenHash
		if err := svc.AuthCache.Set(ctx, key, "1", utils.AuthCacheTTL).Err(); err != nil {
			zap.L().Warn("failed to prime auth cache", zap.String("therapistId", record.ID), zap.Error(err))
		}
	}
	return token, nil
}

func (svc *DefaultTherapistService) evictAuthCache(tokenHash string) {
	if svc.AuthCache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := svc.AuthCache.Del(ctx, utils.AuthCachePrefix+tokenHash).Err(); err != nil {
		zap.L().Warn("failed to evict auth cache", zap.Error(err))
	}
}
