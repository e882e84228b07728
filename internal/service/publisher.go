package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Publisher emits domain events. A nil Publisher disables publishing.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

const publishTimeout = 2 * time.Second

// publish never fails the caller; broker trouble is only logged
func publish(ctx context.Context, p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		logrus.WithFields(logrus.Fields{"routing_key": routingKey, "error": err.Error()}).Warn("publish failed")
	}
}
