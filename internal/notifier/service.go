package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/checkout"
	kafkax "github.com/ariefcatur/go-storefront-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-storefront-checkout.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service drives the order confirmation pipeline off the order.created
// topic: record a confirmation for the order, then hand the order over to
// fulfillment by advancing its status.
type Service struct {
	Repo   *Repo
	Orders *checkout.OrderRepo
	Redis  *redis.Client
}

// HandleOrderCreated is the consumer handler.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env checkout.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != checkout.EventOrderCreated {
		return nil
	}

	// dedup by event id; the producer is at-least-once
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[checkout.OrderPayload](env.Payload)
	if err != nil {
		return err
	}

	recipient := ""
	if p.GuestEmail != nil {
		recipient = *p.GuestEmail
	}
	if err := s.Repo.Record(ctx, env.EventID, p.ID, recipient); err != nil {
		return err
	}

	// confirmation queued; move the order into fulfillment
	if err := s.Orders.UpdateStatus(ctx, p.ID, checkout.StatusPlaced, checkout.StatusProcessing); err != nil {
		log.Printf("advance order %s: %v", p.ID, err)
	}

	log.Printf("order confirmation queued: order=%s recipient=%q", p.ID, recipient)
	return nil
}
