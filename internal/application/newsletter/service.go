package newsletter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/newsletter"
	"github.com/dovoc/backend/internal/domain/notification"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadySubscribed is returned when the email is already on the list
var ErrAlreadySubscribed = shared.NewDomainError("ALREADY_EXISTS", "This email is already subscribed")

// Service implements newsletter signup and broadcast
type Service struct {
	subscribers   newsletter.Repository
	recorder      audit.Recorder
	dispatcher    notification.Dispatcher
	concurrency   int
	notifyTimeout time.Duration
	logger        *zap.Logger
}

// NewService creates a new newsletter service. concurrency bounds the
// broadcast worker fan-out.
func NewService(subscribers newsletter.Repository, recorder audit.Recorder, dispatcher notification.Dispatcher, concurrency int, logger *zap.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		subscribers:   subscribers,
		recorder:      recorder,
		dispatcher:    dispatcher,
		concurrency:   concurrency,
		notifyTimeout: 5 * time.Second,
		logger:        logger,
	}
}

// Subscribe adds an email to the list. The admin notification and the
// welcome email are best-effort.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriberResponse, error) {
	sub, err := newsletter.NewSubscriber(req.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.subscribers.FindByEmail(ctx, sub.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubscribed
	}

	if err := s.subscribers.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, "new subscriber", func(nctx context.Context) error {
		return s.dispatcher.NotifyNewSubscriber(nctx, sub.Email)
	})
	s.notify(ctx, "welcome email", func(nctx context.Context) error {
		return s.dispatcher.SendWelcome(nctx, sub.Email)
	})

	resp := ToSubscriberResponse(sub)
	return &resp, nil
}

// List retrieves all subscribers, oldest first
func (s *Service) List(ctx context.Context) ([]SubscriberResponse, error) {
	subs, err := s.subscribers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]SubscriberResponse, len(subs))
	for i := range subs {
		responses[i] = ToSubscriberResponse(&subs[i])
	}
	return responses, nil
}

// Unsubscribe removes a subscriber
func (s *Service) Unsubscribe(ctx context.Context, id uuid.UUID) error {
	return s.subscribers.Delete(ctx, id)
}

// Broadcast sends one message to every subscriber. Sends are
// independent: one bounced address never aborts the rest, and the
// result tallies both outcomes. An empty list is not an error.
func (s *Service) Broadcast(ctx context.Context, req BroadcastRequest, actor string) (*BroadcastResult, error) {
	subs, err := s.subscribers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := s.fanOut(ctx, subs, req.Subject, req.Message)

	s.recorder.Record(ctx, audit.ActionBroadcastNewsletter, actor,
		fmt.Sprintf("Newsletter %q sent to %d subscribers (%d failed)", req.Subject, result.Sent, result.Failed))

	return result, nil
}

// Announce sends a message to every subscriber on behalf of another
// component, such as a new-arrival notice from the catalog
func (s *Service) Announce(ctx context.Context, subject, message, actor string) error {
	_, err := s.Broadcast(ctx, BroadcastRequest{Subject: subject, Message: message}, actor)
	return err
}

func (s *Service) fanOut(ctx context.Context, subs []newsletter.Subscriber, subject, message string) *BroadcastResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result BroadcastResult
	)

	sem := make(chan struct{}, s.concurrency)
	for i := range subs {
		email := subs[i].Email

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			err := s.dispatcher.SendBroadcast(ctx, email, subject, message)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				s.logger.Warn("broadcast send failed",
					zap.String("email", email),
					zap.Error(err))
				return
			}
			result.Sent++
		}()
	}
	wg.Wait()

	return &result
}

// notify runs one send with a bounded timeout, detached from the
// request's cancellation. Failures are logged and dropped.
func (s *Service) notify(ctx context.Context, kind string, send func(context.Context) error) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	if err := send(nctx); err != nil {
		s.logger.Warn("notification send failed",
			zap.String("kind", kind),
			zap.Error(err))
	}
}
