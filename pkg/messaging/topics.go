package messaging

import "fmt"

type Topic string

const (
	SearchTopic  Topic = "filter_search"
	SessionTopic Topic = "filter_session"
)

// ExchangeName is the exchange and routing key a topic is published on.
func ExchangeName(prefix string, topic Topic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}
