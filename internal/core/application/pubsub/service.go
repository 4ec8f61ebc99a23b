package pubsub

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

const (
	EventTradeProposed  = "TRADE_PROPOSED"
	EventTradeAccepted  = "TRADE_ACCEPTED"
	EventTradeRejected  = "TRADE_REJECTED"
	EventTradeCancelled = "TRADE_CANCELLED"
	EventTradeExpired   = "TRADE_EXPIRED"
)

var topics = map[string]struct{}{
	EventTradeProposed:  {},
	EventTradeAccepted:  {},
	EventTradeRejected:  {},
	EventTradeCancelled: {},
	EventTradeExpired:   {},
	ports.AnyTopic:      {},
}

// EventForStatus returns the event published when a trade enters status.
func EventForStatus(status domain.TradeStatus) string {
	switch status {
	case domain.TradePending:
		return EventTradeProposed
	case domain.TradeAccepted:
		return EventTradeAccepted
	case domain.TradeRejected:
		return EventTradeRejected
	case domain.TradeCancelled:
		return EventTradeCancelled
	case domain.TradeExpired:
		return EventTradeExpired
	default:
		return ports.UnspecifiedTopic
	}
}

// WebhookInfo ...
type WebhookInfo struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"isSecured"`
}

// Service manages webhook subscriptions and publishes trade events.
// A nil *Service is valid and publishes nothing.
type Service struct {
	pubsub ports.SecurePubSub
	wg     sync.WaitGroup
}

func NewService(pubsub ports.SecurePubSub) *Service {
	return &Service{pubsub: pubsub}
}

func (s *Service) SecurePubSub() ports.SecurePubSub {
	return s.pubsub
}

func (s *Service) AddWebhook(
	_ context.Context, event, endpoint, secret string,
) (string, error) {
	if _, ok := topics[event]; !ok {
		return "", application.ErrInvalidTopic
	}
	if u, err := url.ParseRequestURI(endpoint); err != nil ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return "", application.ErrInvalidEndpoint
	}
	return s.pubsub.Subscribe(event, endpoint, secret)
}

func (s *Service) RemoveWebhook(_ context.Context, id string) error {
	return s.pubsub.Unsubscribe(ports.UnspecifiedTopic, id)
}

// ListWebhooks returns the webhooks subscribed for event, or all of them if
// event is empty.
func (s *Service) ListWebhooks(
	_ context.Context, event string,
) ([]WebhookInfo, error) {
	if event != ports.UnspecifiedTopic {
		if _, ok := topics[event]; !ok {
			return nil, application.ErrInvalidTopic
		}
	}
	subs := s.pubsub.ListSubscriptionsForTopic(event)
	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			ID:        sub.Id(),
			Event:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

// PublishTradeEvents publishes, for every given trade, the event matching its
// current status. Delivery happens in background and never blocks the caller.
// Failures are logged and never returned: trades have been committed already.
func (s *Service) PublishTradeEvents(trades ...*domain.Trade) {
	if s == nil || s.pubsub == nil || len(trades) == 0 {
		return
	}

	type event struct {
		topic, tradeID, message string
	}
	events := make([]event, 0, len(trades))
	for _, trade := range trades {
		topic := EventForStatus(trade.Status)
		payload := map[string]interface{}{
			"event":     topic,
			"trade":     trade,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		message, _ := json.Marshal(payload)
		events = append(events, event{topic, trade.ID, string(message)})
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for _, e := range events {
			if err := s.pubsub.Publish(e.topic, e.message); err != nil {
				log.WithError(err).Warnf(
					"pubsub: failed to publish %s for trade %s", e.topic, e.tradeID,
				)
				continue
			}
			log.Debugf("pubsub: published %s for trade %s", e.topic, e.tradeID)
		}
	}()
}

// Wait blocks until every event published so far has been delivered.
func (s *Service) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

func (s *Service) Close() {
	if s == nil || s.pubsub == nil {
		return
	}
	s.wg.Wait()
	if err := s.pubsub.Store().Close(); err != nil {
		log.WithError(err).Warn("pubsub: failed to close store")
	}
}
