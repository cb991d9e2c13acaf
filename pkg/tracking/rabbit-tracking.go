package tracking

import (
	"context"
	"net/http"
	"time"

	"github.com/matst80/listing-filters/pkg/common"
	"github.com/matst80/listing-filters/pkg/logger"
	"github.com/matst80/listing-filters/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// RabbitTracking publishes session events directly and queues search events
// for a background publisher.
type RabbitTracking struct {
	prefix     string
	country    string
	connection *amqp.Connection
	log        logger.Logger
	searches   *common.QueueHandler[SearchEvent]
}

func NewRabbitTracking(url, prefix, country string, log logger.Logger) (*RabbitTracking, error) {
	ret := RabbitTracking{
		prefix:  prefix,
		country: country,
		log:     log,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	ret.searches = common.NewQueueHandler(ret.publishSearches, 50, time.Second)
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	if err = declareTopics(conn, t.prefix); err != nil {
		_ = conn.Close()
		return err
	}
	t.connection = conn
	return nil
}

func declareTopics(conn *amqp.Connection, prefix string) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, prefix, messaging.SessionTopic); err != nil {
		return err
	}
	return messaging.DefineTopic(ch, prefix, messaging.SearchTopic)
}

// Close flushes queued search events before closing the connection.
func (t *RabbitTracking) Close() error {
	t.searches.Close()
	return t.connection.Close()
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type SessionEvent struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type SearchEvent struct {
	*BaseEvent
	Status       string   `json:"status"`
	Query        string   `json:"query"`
	Chips        []string `json:"chips"`
	QuickFilters []string `json:"quick_filters"`
	Referer      string   `json:"referer,omitempty"`
}

func newSearchEvent(sessionID, country string, search Search, r *http.Request) SearchEvent {
	event := EventSearch
	if search.Handoff {
		event = EventHandoff
	}
	ret := SearchEvent{
		BaseEvent:    &BaseEvent{Event: event, SessionId: sessionID, Country: country, Context: "b2c"},
		Status:       search.Status,
		Query:        search.Query,
		Chips:        search.Chips,
		QuickFilters: search.QuickFilters,
	}
	if r != nil {
		ret.Referer = r.Header.Get("Referer")
	}
	return ret
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (rt *RabbitTracking) TrackSession(ctx context.Context, sessionID string, r *http.Request) {
	err := messaging.SendChange(ctx, rt.connection, rt.prefix, messaging.SessionTopic, SessionEvent{
		BaseEvent:    &BaseEvent{Event: EventSession, SessionId: sessionID, Country: rt.country, Context: "b2c"},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
	if err != nil {
		rt.log.WithError(err).Error("error sending session event", logger.Fields{"session": sessionID})
	}
}

func (rt *RabbitTracking) TrackSearch(_ context.Context, sessionID string, search Search, r *http.Request) {
	rt.searches.Add(newSearchEvent(sessionID, rt.country, search, r))
}

func (rt *RabbitTracking) publishSearches(events []SearchEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	for _, ev := range events {
		if err := messaging.SendChange(ctx, rt.connection, rt.prefix, messaging.SearchTopic, ev); err != nil {
			rt.log.WithError(err).Error("error sending search event", logger.Fields{"session": ev.SessionId})
		}
	}
}
