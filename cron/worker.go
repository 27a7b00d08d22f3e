package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"santai/config"
	"santai/models"
	"santai/services/booking"
	"santai/services/notification"
	"santai/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the async worker in background. It consumes the
// deferred expiry tasks enqueued at booking creation.
func InitExpiryWorker(bookingSvc booking.BookingService, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisExpiryQueue,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpiryTask(bookingSvc, notifSvc))

	go monitorRedisConnection()

	// Start async worker with retry logic.
	go func() {
		log.Println("[ExpiryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// NewExpiryQueueClient returns the enqueue-side client for the expiry queue.
func NewExpiryQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisExpiryQueue,
	})
}

func handleExpiryTask(bookingSvc booking.BookingService, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] Invalid payload: %v", err)
			return err
		}

		expired, err := bookingSvc.ExpireBooking(p.BookingID, p.Reason)
		if err != nil {
			// The booking was accepted, rejected or already expired before
			// the task fired. Not an error, just a lost race.
			var illegal *booking.IllegalTransitionError
			if errors.As(err, &illegal) {
				log.Printf("[ExpiryHandler] Booking %s already resolved (%s), nothing to expire", p.BookingID, illegal.From)
				return nil
			}
			var notFound *booking.NotFoundError
			if errors.As(err, &notFound) {
				log.Printf("[ExpiryHandler] Booking %s no longer exists, nothing to expire", p.BookingID)
				return nil
			}
			log.Printf("[ExpiryHandler] Failed to expire booking %s: %v", p.BookingID, err)
			return err
		}

		log.Printf("[ExpiryHandler] Booking %s expired", p.BookingID)
		notifSvc.NotifyBookingExpired(expired)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisExpiryQueue,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ExpiryWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
