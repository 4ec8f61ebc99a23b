package pubsub

import (
	"fmt"
	"net/url"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/google/uuid"
)

type Subscription struct {
	ID       string `json:"id"`
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		sub := s[i]
		subs = append(subs, &sub)
	}
	return subs
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if len(event) <= 0 {
		return nil, fmt.Errorf("missing event")
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid webhook endpoint, must be a valid http(s) URL")
	}
	id := uuid.New().String()
	return &Subscription{id, event, endpoint, secret}, nil
}

func (h *Subscription) Topic() string {
	return h.Event
}

func (h *Subscription) Id() string {
	return h.ID
}

func (h *Subscription) NotifyAt() string {
	return h.Endpoint
}

func (h *Subscription) IsSecured() bool {
	return len(h.Secret) > 0
}

// subscriptionFromPort returns the given subscription as stored by this
// package. Subscriptions created elsewhere carry no secret.
func subscriptionFromPort(sub ports.Subscription) Subscription {
	if s, ok := sub.(*Subscription); ok {
		return *s
	}
	return Subscription{
		ID:       sub.Id(),
		Event:    sub.Topic(),
		Endpoint: sub.NotifyAt(),
	}
}
