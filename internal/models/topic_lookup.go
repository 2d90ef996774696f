package models

import (
	"strings"
	"time"
)

// TopicLookup represents a per-topic analysis count by source.
type TopicLookup struct {
	Topic      string
	Source     string
	Count      int64
	LastSeenAt time.Time
}

// LookupKey folds a topic to the form counted in topic_lookups.
func LookupKey(topic string) string {
	return strings.ToLower(strings.Join(strings.Fields(topic), " "))
}
