package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"viptrip/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripCancelled NotificationType = "TRIP_CANCELLED"
	NotificationTripOnHold    NotificationType = "TRIP_ON_HOLD"
	NotificationTripCompleted NotificationType = "TRIP_COMPLETED"
)

// Notification is one message addressed to a user's registered devices.
// Delivery itself (FCM, APNS) happens in an external gateway; this service
// only assembles and hands off payloads.
type Notification struct {
	Type      NotificationType
	Recipient domain.NotificationInfo
	TripID    int64
	Data      map[string]interface{}
	CreatedAt time.Time
}

// NotificationService assembles and dispatches trip lifecycle notifications.
type NotificationService struct {
	log *logrus.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(log *logrus.Logger) *NotificationService {
	return &NotificationService{log: log}
}

// NotifyTripCancelled tells the other party that a trip was cancelled.
func (s *NotificationService) NotifyTripCancelled(ctx context.Context, tripID int64, canceledBy domain.CanceledBy, recipient *domain.NotificationInfo) error {
	if recipient == nil {
		return nil
	}
	return s.send(ctx, Notification{
		Type:      NotificationTripCancelled,
		Recipient: *recipient,
		TripID:    tripID,
		Data: map[string]interface{}{
			"trip_id":      tripID,
			"cancelled_by": canceledBy,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyTripCompleted tells the passenger that their trip ended.
func (s *NotificationService) NotifyTripCompleted(ctx context.Context, tripID int64, price float64, recipient *domain.NotificationInfo) error {
	if recipient == nil {
		return nil
	}
	return s.send(ctx, Notification{
		Type:      NotificationTripCompleted,
		Recipient: *recipient,
		TripID:    tripID,
		Data: map[string]interface{}{
			"trip_id": tripID,
			"price":   price,
		},
		CreatedAt: time.Now(),
	})
}

// send hands the payload to the delivery gateway. Until that gateway is wired
// the payload is logged with everything delivery needs.
func (s *NotificationService) send(ctx context.Context, n Notification) error {
	s.log.WithFields(logrus.Fields{
		"type":       n.Type,
		"trip_id":    n.TripID,
		"recipient":  n.Recipient.UUID,
		"language":   n.Recipient.PreferredLanguage,
		"fcm_tokens": len(n.Recipient.FCMTokens),
	}).Info("notification dispatched")
	return nil
}
