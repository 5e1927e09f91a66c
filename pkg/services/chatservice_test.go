package services

import (
	"testing"
	"time"

	"alternus-gallery-io/api/pkg/models"
)

func chatMessages(times ...time.Time) []models.ChatMessage {
	msgs := make([]models.ChatMessage, 0, len(times))
	for i, ts := range times {
		msgs = append(msgs, models.ChatMessage{Id: string(rune('a' + i)), Timestamp: ts})
	}
	return msgs
}

func TestFilterMessagesSince(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1, t2, t3, t4 := base, base.Add(time.Second), base.Add(2*time.Second), base.Add(3*time.Second)
	msgs := chatMessages(t1, t2, t3, t4)

	// polling with the cursor at t3 must return exactly the t4 message
	got := FilterMessagesSince(msgs, t3)
	if len(got) != 1 || !got[0].Timestamp.Equal(t4) {
		t.Fatalf("since=t3 returned %d messages, want exactly the one at t4", len(got))
	}

	// the cursor is exclusive: a message at exactly since is not repeated
	if got := FilterMessagesSince(msgs, t4); len(got) != 0 {
		t.Fatalf("since=t4 returned %d messages, want 0", len(got))
	}

	// zero cursor returns full history in order
	got = FilterMessagesSince(msgs, time.Time{})
	if len(got) != 4 {
		t.Fatalf("zero cursor returned %d messages, want 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.Before(got[i-1].Timestamp) {
			t.Fatal("order not preserved")
		}
	}
}
