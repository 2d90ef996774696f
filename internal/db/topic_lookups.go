package db

import (
	"context"

	"wordbubble/internal/models"
)

// IncrementTopicLookup upserts a topic lookup count by source.
func (d *DB) IncrementTopicLookup(ctx context.Context, topic, source string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO topic_lookups (topic, source, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (topic, source) DO UPDATE
		SET count = topic_lookups.count + 1, last_seen_at = NOW()
	`, models.LookupKey(topic), source)
	return err
}

// GetTopTopicLookups returns the most counted topic lookup rows for metrics export.
func (d *DB) GetTopTopicLookups(ctx context.Context, limit int) ([]models.TopicLookup, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT topic, source, count, last_seen_at
		FROM topic_lookups
		ORDER BY count DESC, topic
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.TopicLookup
	for rows.Next() {
		var l models.TopicLookup
		if err := rows.Scan(&l.Topic, &l.Source, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}
