package tasks

import (
	"encoding/json"
	"time"

	"santai/models"

	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

// NewBookingExpiryTask builds the deferred task that expires an unanswered
// booking once its response deadline passes.
func NewBookingExpiryTask(payload models.BookingExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
