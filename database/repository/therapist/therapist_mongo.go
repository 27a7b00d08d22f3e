package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"santai/config"
	"santai/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo creates a new TherapistRepository backed by the
// therapists collection.
func NewMongoTherapistRepo(client *mongo.Client) TherapistRepository {
	coll := client.Database(config.AppConfig.DatabaseName).Collection("therapists")
	repo := &MongoTherapistRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("therapistRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoTherapistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new therapist document.
func (r *MongoTherapistRepo) Create(therapist *models.Therapist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	therapist.CreatedAt = now
	therapist.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, therapist); err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

// GetByID retrieves a therapist by its unique ID.
func (r *MongoTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByIDWithProjection retrieves a therapist by ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoTherapistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var therapist models.Therapist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&therapist); err != nil {
		return nil, fmt.Errorf("failed to fetch therapist with id %s: %w", id, err)
	}
	return &therapist, nil
}

// GetByEmail retrieves a therapist by email. Returns (nil, nil) when no
// document matches.
func (r *MongoTherapistRepo) GetByEmail(email string) (*models.Therapist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var therapist models.Therapist
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch therapist with email %s: %w", email, err)
	}
	return &therapist, nil
}

// UpdateSetDocument applies a partial $set update to a therapist document.
func (r *MongoTherapistRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update therapist with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}
