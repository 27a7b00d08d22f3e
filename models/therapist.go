package models

import "time"

// Therapist represents a service provider account. Only the fields the
// booking dashboard and auth middleware read are modeled here.
type Therapist struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	WhatsApp     string    `bson:"whatsapp" json:"whatsapp"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash" json:"-"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	Status       string    `bson:"status" json:"status"` // "available", "busy", "offline"
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
