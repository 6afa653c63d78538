// Package notification delivers housekeeping web push messages when a room
// enters CLEANING after checkout.
package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"hotel-occupancy-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending housekeeping notifications.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case roomID := <-wp.jobs:
			log.Printf("Worker %d processing room %d", id, roomID)
			wp.sendNotificationsForRoom(ctx, roomID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(roomID int64) {
	wp.jobs <- roomID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// sendNotificationsForRoom notifies housekeeping staff subscribed to the
// room's floor, plus those subscribed to every floor (floor 0).
func (wp *WorkerPool) sendNotificationsForRoom(ctx context.Context, roomID int64) {
	var room model.Room
	if err := wp.db.WithContext(ctx).
		Select("number", "floor").
		First(&room, roomID).Error; err != nil {
		log.Printf("Error fetching room %d: %v", roomID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("floor = ? OR floor = 0", room.Floor).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for room %d: %v", roomID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for room %d", len(subscriptions), roomID)

	message := fmt.Sprintf("Room %s is ready for cleaning", room.Number)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	// Manually construct the webpush.Subscription object
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
