package therapist

import (
	"errors"
	"sync"
	"testing"

	"santai/models"
	"santai/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type memoryTherapistRepo struct {
	mu         sync.Mutex
	therapists map[string]*models.Therapist // keyed by ID
}

func newMemoryTherapistRepo() *memoryTherapistRepo {
	return &memoryTherapistRepo{therapists: make(map[string]*models.Therapist)}
}

func (r *memoryTherapistRepo) Create(t *models.Therapist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.therapists[t.ID] = &cp
	return nil
}

func (r *memoryTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.therapists[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTherapistRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Therapist, error) {
	return r.GetByID(id)
}

func (r *memoryTherapistRepo) GetByEmail(email string) (*models.Therapist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.therapists {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryTherapistRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.therapists[id]
	if !ok {
		return errors.New("not found")
	}
	if hash, ok := updateDoc["token_hash"].(string); ok {
		t.TokenHash = hash
	}
	if token, ok := updateDoc["fcm_token"].(string); ok {
		t.FCMToken = token
	}
	return nil
}

func TestRegisterAndSignIn(t *testing.T) {
	repo := newMemoryTherapistRepo()
	svc := &DefaultTherapistService{Repo: repo}

	t.Run("register issues a usable token", func(t *testing.T) {
		resp, err := svc.Register("Ayu", "ayu@example.com", "+62811111111", "correct-horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected a session token")
		}

		id, err := utils.ExtractIDFromToken(resp.Token)
		if err != nil {
			t.Fatalf("issued token does not validate: %v", err)
		}
		if id != resp.Therapist.ID {
			t.Errorf("token subject = %q, want %q", id, resp.Therapist.ID)
		}

		stored, _ := repo.GetByID(resp.Therapist.ID)
		if stored.TokenHash != utils.HashToken(resp.Token) {
			t.Error("stored token hash does not match the issued token")
		}
		if stored.PasswordHash == "correct-horse" {
			t.Error("password must not be stored in clear text")
		}
	})

	t.Run("register rejects a duplicate email", func(t *testing.T) {
		if _, err := svc.Register("Other", "ayu@example.com", "", "another-pass"); err == nil {
			t.Fatal("expected duplicate email to fail")
		}
	})

	t.Run("sign in succeeds with the right password", func(t *testing.T) {
		resp, err := svc.SignIn("ayu@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected a session token")
		}
	})

	t.Run("sign in fails with the wrong password", func(t *testing.T) {
		_, err := svc.SignIn("ayu@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("sign in fails for an unknown email", func(t *testing.T) {
		_, err := svc.SignIn("nobody@example.com", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("sign out clears the stored token hash", func(t *testing.T) {
		resp, err := svc.SignIn("ayu@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if err := svc.SignOut(resp.Therapist.ID); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}
		stored, _ := repo.GetByID(resp.Therapist.ID)
		if stored.TokenHash != "" {
			t.Error("token hash should be cleared on sign out")
		}
	})
}
