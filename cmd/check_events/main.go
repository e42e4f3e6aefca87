// Command check_events prints the most recent cart events in the outbox.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/cartsync-service/internal/config"
	"github.com/light-bringer/cartsync-service/internal/models/m_outbox"
	"github.com/light-bringer/cartsync-service/internal/pkg/query"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	userID := flag.String("user", "", "Only show events of this user's cart")
	status := flag.String("status", "", "Only show events with this status (pending, processed)")
	limit := flag.Int64("limit", 10, "Maximum number of events")
	flag.Parse()

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	fmt.Println("Events in outbox_events table:")
	count, err := printEvents(ctx, client, eventsQuery(*userID, *status, *limit))
	if err != nil {
		log.Fatalf("Failed to read events: %v", err)
	}

	if count == 0 {
		fmt.Println("No events found!")
	} else {
		fmt.Printf("\nTotal: %d events\n", count)
	}
}

func eventsQuery(userID, status string, limit int64) *query.Builder {
	q := query.From(m_outbox.TableName).
		Select(m_outbox.EventID, m_outbox.EventType, m_outbox.AggregateID, m_outbox.Status, m_outbox.CreatedAt, m_outbox.Payload)
	if userID != "" {
		q = q.Where(query.Eq(m_outbox.AggregateID, userID))
	}
	if status != "" {
		q = q.Where(query.Eq(m_outbox.Status, status))
	}
	return q.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(limit)
}

func printEvents(ctx context.Context, client *spanner.Client, q *query.Builder) (int, error) {
	iter := client.Single().Query(ctx, q.Build())
	defer iter.Stop()

	count := 0
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return count, fmt.Errorf("failed to scan: %w", err)
		}

		count++
		fmt.Printf("%d. %s - %s (cart: %s, status: %s, at: %s)\n",
			count, data.EventType, data.EventID, data.AggregateID, data.Status, data.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
		if data.Payload.Valid {
			fmt.Printf("   %s\n", data.Payload.String())
		}
	}
}
