package newsletter

import (
	"time"

	"github.com/dovoc/backend/internal/domain/newsletter"
	"github.com/google/uuid"
)

// SubscribeRequest carries a storefront newsletter signup
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// BroadcastRequest carries an admin newsletter send
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=300"`
	Message string `json:"message" binding:"required,min=1,max=10000"`
}

// BroadcastResult tallies a broadcast's per-recipient outcomes
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SubscriberResponse represents a subscriber in API responses
type SubscriberResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// ToSubscriberResponse converts a domain subscriber to its API shape
func ToSubscriberResponse(s *newsletter.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:           s.ID,
		Email:        s.Email,
		SubscribedAt: s.SubscribedAt,
	}
}
