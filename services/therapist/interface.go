package therapist

import (
	therapistRepo "santai/database/repository/therapist"
	"santai/models"

	"github.com/go-redis/redis/v8"
)

// AuthResponse is returned after successful registration or sign-in.
type AuthResponse struct {
	Therapist *models.Therapist `json:"therapist"`
	Token     string            `json:"token"`
}

// TherapistService handles therapist account lifecycle and authentication.
type TherapistService interface {
	Register(name, email, whatsApp, password string) (*AuthResponse, error)
	SignIn(email, password string) (*AuthResponse, error)
	SignOut(therapistID string) error
	UpdateFCMToken(therapistID, fcmToken string) error
	GetByID(therapistID string) (*models.Therapist, error)
}

// DefaultTherapistService implements TherapistService.
type DefaultTherapistService struct {
	Repo      therapistRepo.TherapistRepository
	AuthCache *redis.Client
}
