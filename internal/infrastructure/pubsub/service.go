package pubsub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/Ayushgangwar02/fantasy-Sports-app/pkg/circuitbreaker"
	"github.com/Ayushgangwar02/fantasy-Sports-app/pkg/stats"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultRateLimit is the max number of webhook requests per second.
	DefaultRateLimit = 50
	requestTimeout   = 15 * time.Second
	tokenLifetime    = 5 * time.Minute
)

type service struct {
	store      ports.PubSubStore
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns a SecurePubSub delivering messages to webhooks with
// POST requests. At most rateLimit requests per second are made, and
// deliveries stop for a while once most of the recent ones failed.
func NewService(store ports.PubSubStore, rateLimit int) (ports.SecurePubSub, error) {
	if store == nil {
		return nil, fmt.Errorf("missing pubsub store")
	}
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}

	return &service{
		store:      store,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
		limiter:    ratelimit.New(rateLimit),
	}, nil
}

func (ws *service) Store() ports.PubSubStore {
	return ws.store
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.AddSubscription(context.Background(), sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(_, id string) error {
	return ws.store.RemoveSubscription(context.Background(), id)
}

// ListSubscriptionsForTopic returns the subscriptions for topic including
// those for any topic. An unspecified topic returns every subscription.
func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	subs, err := ws.store.ListSubscriptions(context.Background())
	if err != nil {
		log.WithError(err).Warn("pubsub: failed to list subscriptions")
		return nil
	}
	if topic == ports.UnspecifiedTopic {
		return subs
	}

	filtered := make([]ports.Subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.Topic() == topic || sub.Topic() == ports.AnyTopic {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}

func (ws *service) Publish(topic string, message string) error {
	subs := ws.ListSubscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subscriptionFromPort(subs[i])
		eg.Go(func() error {
			err := ws.doRequest(sub, message)
			stats.RecordWebhookDelivery(topic, err == nil)
			return err
		})
	}
	return eg.Wait()
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			tokenString, err := signToken(sub)
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		ws.limiter.Take()
		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("webhook %s replied with status %d: %s", sub.ID, status, resp)
		}
		return nil, nil
	})

	return err
}

func signToken(sub Subscription) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   sub.Event,
		Id:        sub.ID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(sub.Secret))
}
