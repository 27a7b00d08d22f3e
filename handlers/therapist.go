package handlers

import (
	"errors"
	"net/http"

	"santai/services/therapist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterTherapistHandler creates a new therapist account.
func RegisterTherapistHandler(svc therapist.TherapistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			WhatsApp string `json:"whatsapp"`
			Password string `json:"password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		resp, err := svc.Register(input.Name, input.Email, input.WhatsApp, input.Password)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// AuthenticateTherapistHandler signs a therapist in and returns a token.
func AuthenticateTherapistHandler(svc therapist.TherapistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		resp, err := svc.SignIn(input.Email, input.Password)
		if err != nil {
			if errors.Is(err, therapist.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			zap.L().Error("sign-in failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SignOutTherapistHandler revokes the current session.
func SignOutTherapistHandler(svc therapist.TherapistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")
		if err := svc.SignOut(therapistID); err != nil {
			zap.L().Error("sign-out failed", zap.String("therapistID", therapistID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "signed out"})
	}
}

// UpdateFCMTokenHandler registers the therapist's device token for pushes.
func UpdateFCMTokenHandler(svc therapist.TherapistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")
		var input struct {
			FCMToken string `json:"fcmToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if err := svc.UpdateFCMToken(therapistID, input.FCMToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update device token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "device token updated"})
	}
}

// GetTherapistHandler returns the authenticated therapist's profile.
func GetTherapistHandler(svc therapist.TherapistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")
		record, err := svc.GetByID(therapistID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"therapist": record})
	}
}
