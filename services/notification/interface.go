package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"shutterhub/utils"
)

// Event names the booking lifecycle moments that trigger a push.
type Event string

const (
	EventBookingCreated   Event = "booking_created"
	EventBookingConfirmed Event = "booking_confirmed"
	EventBookingCancelled Event = "booking_cancelled"
	EventBookingCompleted Event = "booking_completed"
	EventBookingExpired   Event = "booking_expired"
)

// TokenSource resolves an actor's FCM registration token. The production
// implementation reads the token registry in Redis.
type TokenSource interface {
	FCMToken(ctx context.Context, actorID string) (string, error)
}

// Service defines methods for sending booking pushes.
type Service interface {
	NotifyBookingEvent(ctx context.Context, recipientID string, event Event, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	tokens TokenSource
}

func NewDefaultNotificationService(tokens TokenSource) (*DefaultNotificationService, error) {
	if tokens == nil {
		return nil, fmt.Errorf("notification service initialization error: token source is nil")
	}
	return &DefaultNotificationService{tokens: tokens}, nil
}

// NotifyBookingEvent looks up the recipient's FCM token and sends a push for
// the event. Recipients without a registered token are skipped silently.
func (s *DefaultNotificationService) NotifyBookingEvent(
	ctx context.Context,
	recipientID string,
	event Event,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		return nil // push delivery disabled, no credentials configured
	}

	token, err := s.tokens.FCMToken(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("NotifyBookingEvent: could not resolve token for %s: %w", recipientID, err)
	}
	if token == "" {
		return nil // no push target
	}

	title, body := messageFor(event, data)
	if data == nil {
		data = map[string]string{}
	}
	data["type"] = string(event)

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyBookingEvent: failed to send FCM message: %w", err)
	}
	return nil
}

func messageFor(event Event, data map[string]string) (title, body string) {
	title = "Booking update"
	ref := data["booking_id"]
	switch event {
	case EventBookingCreated:
		title = "New booking request 📸"
		body = fmt.Sprintf("Booking %s is awaiting payment.", ref)
	case EventBookingConfirmed:
		title = "Booking confirmed ✅"
		body = fmt.Sprintf("Booking %s is confirmed. See you there!", ref)
	case EventBookingCancelled:
		title = "Booking cancelled"
		body = fmt.Sprintf("Booking %s was cancelled and its dates are free again.", ref)
	case EventBookingCompleted:
		title = "Booking completed 🎉"
		body = fmt.Sprintf("Booking %s is done. Thanks for using ShutterHub!", ref)
	case EventBookingExpired:
		title = "Booking expired"
		body = fmt.Sprintf("Booking %s was not paid in time and has been released.", ref)
	default:
		body = fmt.Sprintf("Booking %s was updated.", ref)
	}
	return title, body
}
