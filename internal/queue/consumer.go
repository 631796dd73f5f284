// This file contains the background consumer that listens to the
// reservation.confirmed queue and renders a ticket document for each
// confirmed reservation. The consumer is peripheral: the reservation is
// already committed by the time a message arrives, and a rendering
// failure only loses the document, never the reservation.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-reservation/internal/ticket"
)

// StartTicketConsumer connects to RabbitMQ, declares the
// reservation.confirmed queue (durable), and starts consuming messages.
// For each message it writes a ticket PDF into the configured output
// directory (TICKET_DIR, default "tickets"). The function runs a
// reconnect loop and keeps running across broker restarts; processing
// errors are logged and the offending message is rejected without
// requeue so the consumer never spins on a poison message.
func StartTicketConsumer(log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	url := brokerURL()

	dir := os.Getenv("TICKET_DIR")
	if dir == "" {
		dir = "tickets"
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("ticket-consumer: failed to dial broker; retrying in %s", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, dir, log); err != nil {
			log.WithError(err).Warn("ticket-consumer: consume loop ended; reconnecting")
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, dir string, log *logrus.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("ticket-consumer: set QoS failed")
	}

	_, err = ch.QueueDeclare(reservationQueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(reservationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, dir, log); err != nil {
			log.WithError(err).Warn("ticket-consumer: handle message failed")
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, dir string, log *logrus.Logger) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	doc, err := ticket.Render(ticket.Info{
		ReservationID: ev.ReservationID,
		EventID:       ev.EventID,
		EventName:     ev.EventName,
		EventDate:     ev.EventDate,
		Customer:      ev.Customer,
		Seats:         ev.Seats,
		ReservedAt:    ev.ReservedAt,
	})
	if err != nil {
		return fmt.Errorf("render ticket: %w", err)
	}
	fpath := filepath.Join(dir, fmt.Sprintf("ticket_%d.pdf", ev.ReservationID))
	if err := os.WriteFile(fpath, doc, 0o644); err != nil {
		return fmt.Errorf("write ticket: %w", err)
	}
	log.WithFields(logrus.Fields{
		"reservation_id": ev.ReservationID,
		"customer":       ev.Customer,
		"path":           fpath,
	}).Info("ticket-consumer: ticket rendered")
	return nil
}
