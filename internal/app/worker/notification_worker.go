package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotificationWorker drains queued notification events and writes one inbox
// row per recipient. It is the delivery side of the notifier contract and
// runs detached from the request path.
type NotificationWorker struct {
	rdb              *redis.Client
	notificationRepo repository.NotificationRepository
	queueName        string
}

func NewNotificationWorker(rdb *redis.Client, notificationRepo repository.NotificationRepository, queueName string) *NotificationWorker {
	return &NotificationWorker{
		rdb:              rdb,
		notificationRepo: notificationRepo,
		queueName:        queueName,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	log.Println("Notification worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Notification worker stopping...")
			return
		default:
			result, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from queue '%s': %v", w.queueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// result is an array: [queueName, value]
			if len(result) < 2 || result[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}
			w.handleEvent(ctx, []byte(result[1]))
		}
	}
}

func (w *NotificationWorker) handleEvent(ctx context.Context, payload []byte) {
	var event model.NotificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("ERROR: Failed to decode notification event: %v", err)
		return
	}

	now := time.Now().UTC()
	notifications := make([]model.Notification, 0, len(event.RecipientIDs))
	for _, recipientID := range event.RecipientIDs {
		notifications = append(notifications, model.Notification{
			ID:           uuid.NewString(),
			UserID:       recipientID,
			SubmissionID: event.SubmissionID,
			Actor:        event.Actor,
			Track:        event.Track,
			Slug:         event.Slug,
			CreatedAt:    now,
		})
	}

	if err := w.notificationRepo.CreateNotifications(ctx, notifications); err != nil {
		log.Printf("ERROR: Failed to persist notifications for submission %s: %v", event.SubmissionID, err)
		w.requeue(ctx, payload)
	}
}

func (w *NotificationWorker) requeue(ctx context.Context, payload []byte) {
	if err := w.rdb.RPush(ctx, w.queueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to re-queue notification event: %v", err)
	} else {
		log.Println("INFO: Notification event re-queued.")
	}
}
