package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB. Every
// successful write is mirrored onto the booking events channel so that
// realtime subscribers observe the change, the way the original document
// store emitted collection events.
type MongoBookingRepo struct {
	coll      *mongo.Collection
	publisher EventPublisher
}

// NewMongoBookingRepo creates a BookingRepository backed by the bookings
// collection. The publisher may be nil; change events are then skipped.
func NewMongoBookingRepo(client *mongo.Client, publisher EventPublisher) BookingRepository {
	coll := client.Database(config.AppConfig.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll, publisher: publisher}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("bookingRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "therapist_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert persists a new booking document.
func (r *MongoBookingRepo) Insert(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.publish("created", *booking)
	return nil
}

// GetByBookingID resolves a booking by its business identifier.
func (r *MongoBookingRepo) GetByBookingID(bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// ListByTherapist returns up to limit bookings assigned to the therapist,
// newest first.
func (r *MongoBookingRepo) ListByTherapist(therapistID string, limit int64) ([]models.Booking, error) {
	return r.list(bson.M{"therapist_id": therapistID}, limit)
}

// ListPendingByTherapist returns up to limit pending_accept bookings for the
// therapist, newest first.
func (r *MongoBookingRepo) ListPendingByTherapist(therapistID string, limit int64) ([]models.Booking, error) {
	filter := bson.M{
		"therapist_id": therapistID,
		"status":       models.StatusPendingAccept,
	}
	return r.list(filter, limit)
}

func (r *MongoBookingRepo) list(filter bson.M, limit int64) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// UpdateFields applies a partial $set update and returns the updated document.
func (r *MongoBookingRepo) UpdateFields(bookingID string, fields bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID}
	update := bson.M{"$set": fields}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}

	r.publish("updated", updated)
	return &updated, nil
}

// publish mirrors a successful write onto the events channel. Realtime is
// advisory: failures are logged, never propagated to the caller.
func (r *MongoBookingRepo) publish(event string, booking models.Booking) {
	if r.publisher == nil {
		return
	}
	ctx, cancel := newContext(2 * time.Second)
	defer cancel()

	if err := r.publisher.Publish(ctx, models.BookingEvent{Event: event, Booking: booking}); err != nil {
		zap.L().Warn("bookingRepo: failed to publish change event",
			zap.String("event", event),
			zap.String("bookingId", booking.BookingID),
			zap.Error(err))
	}
}
