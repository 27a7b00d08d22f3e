package therapistRepo

import (
	"santai/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TherapistRepository defines the data access the auth middleware and
// therapist service need.
type TherapistRepository interface {
	Create(therapist *models.Therapist) error
	GetByID(id string) (*models.Therapist, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error)
	GetByEmail(email string) (*models.Therapist, error)
	UpdateSetDocument(id string, updateDoc bson.M) error
}
