package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/okovalen/freelance-platform-api/internal/services/rating"
)

// StartReviewConsumer connects to RabbitMQ, declares the review.created
// queue (durable), and recomputes the reviewed user's rating for each
// message. It runs a reconnect loop with backoff and keeps running across
// broker restarts; processing errors are logged and the message rejected so
// the server continues operating.
func StartReviewConsumer(url string, ratings *rating.Service) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("review-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, ratings); err != nil {
			log.Printf("review-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, ratings *rating.Service) error {
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("review-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(reviewQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(reviewQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, ratings); err != nil {
			log.Printf("review-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}

	return fmt.Errorf("delivery channel closed")
}

func handleMessage(body []byte, ratings *rating.Service) error {
	var ev ReviewCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	res, err := ratings.Recompute(ev.ReviewedID)
	if err != nil {
		return fmt.Errorf("recompute rating for user %d: %w", ev.ReviewedID, err)
	}

	log.Printf("review-consumer: user %d rating -> %.2f (%d reviews)", res.UserID, res.Rating, res.ReviewCount)
	return nil
}
