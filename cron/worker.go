package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"shutterhub/config"
	booking "shutterhub/services/booking"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

type expirePayload struct {
	BookingID string `json:"booking_id"`
}

// Scheduler enqueues delayed expiry tasks. It satisfies
// booking.ExpiryScheduler.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler builds the asynq client for the expiry queue.
func NewScheduler() *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(queueRedisOpts()),
	}
}

// ScheduleExpiry arranges for the booking to be reaped after delay if it is
// still awaiting payment by then.
func (s *Scheduler) ScheduleExpiry(ctx context.Context, bookingID string, delay time.Duration) error {
	b, err := json.Marshal(expirePayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay)); err != nil {
		return fmt.Errorf("enqueue expiry for booking %s: %w", bookingID, err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *Scheduler) Close() error {
	return s.client.Close()
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitExpiryWorker runs the async worker in background.
func InitExpiryWorker(svc booking.BookingService) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingExpire, handleExpireTask(svc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpireTask(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p expirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] invalid payload: %v", err)
			return err
		}

		if err := svc.ExpirePending(ctx, p.BookingID); err != nil {
			log.Printf("[ExpiryHandler] failed to expire booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ExpiryWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
