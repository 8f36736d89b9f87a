package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subjects published by the service
const (
	SubjectAnalyzed  = "codelancer.analyzed"
	SubjectGenerated = "codelancer.generated"
	SubjectCorrected = "codelancer.corrected"
)

// Publisher sends service events to subscribers
type Publisher interface {
	Publish(subject string, data interface{}) error
	Close()
}

// Event wraps the payload with metadata
type Event struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent builds the envelope for data published on subject
func NewEvent(subject string, data interface{}) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Event{
		ID:        uuid.NewString(),
		Subject:   subject,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	}, nil
}

// NATSPublisher publishes events on a core NATS connection
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("codelancer"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSPublisher{conn: nc}, nil
}

// Publish sends data wrapped in an Event. Delivery is fire and forget.
func (p *NATSPublisher) Publish(subject string, data interface{}) error {
	if p.conn == nil || p.conn.IsClosed() {
		return nats.ErrConnectionClosed
	}

	event, err := NewEvent(subject, data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Data = payload
	return p.conn.PublishMsg(msg)
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// NopPublisher discards every event; used when NATS is not configured
type NopPublisher struct{}

func (NopPublisher) Publish(string, interface{}) error { return nil }

func (NopPublisher) Close() {}
