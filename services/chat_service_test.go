package services

import (
	"testing"
	"time"

	"homefind-server/models"
)

func msg(id uint, sender, recipient uint, at time.Time, read bool) models.RoommateMessage {
	return models.RoommateMessage{
		ID:          id,
		SenderID:    sender,
		RecipientID: recipient,
		Message:     "hello",
		Read:        read,
		CreatedAt:   at,
	}
}

func TestMergeMessagesOrdersByCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sent := []models.RoommateMessage{
		msg(3, 1, 2, base.Add(2*time.Minute), false),
		msg(1, 1, 2, base, false),
	}
	received := []models.RoommateMessage{
		msg(2, 2, 1, base.Add(time.Minute), false),
	}

	merged := MergeMessages(sent, received)
	if len(merged) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(merged))
	}
	for i, wantID := range []uint{1, 2, 3} {
		if merged[i].ID != wantID {
			t.Fatalf("position %d: expected message %d, got %d", i, wantID, merged[i].ID)
		}
	}
}

func TestMergeMessagesDropsDuplicates(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// The same row can arrive through the bulk fetch and the realtime
	// channel; it must appear once.
	bulk := []models.RoommateMessage{
		msg(1, 1, 2, base, false),
		msg(2, 2, 1, base.Add(time.Minute), false),
	}
	realtime := []models.RoommateMessage{
		msg(2, 2, 1, base.Add(time.Minute), false),
	}

	merged := MergeMessages(bulk, realtime)
	if len(merged) != 2 {
		t.Fatalf("expected 2 messages after dedup, got %d", len(merged))
	}
}

func TestMergeMessagesTiesBreakOnID(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	merged := MergeMessages([]models.RoommateMessage{
		msg(5, 1, 2, at, false),
		msg(4, 2, 1, at, false),
	})
	if merged[0].ID != 4 || merged[1].ID != 5 {
		t.Fatalf("expected ID order 4,5 on equal timestamps, got %d,%d", merged[0].ID, merged[1].ID)
	}
}

func TestMergeMessagesEmpty(t *testing.T) {
	if merged := MergeMessages(); len(merged) != 0 {
		t.Fatalf("expected empty merge, got %d messages", len(merged))
	}
	if merged := MergeMessages(nil, nil); len(merged) != 0 {
		t.Fatalf("expected empty merge of nil streams, got %d messages", len(merged))
	}
}

func TestConversationPartners(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []models.RoommateMessage{
		msg(1, 1, 2, base, false),
		msg(2, 3, 1, base.Add(time.Minute), false),
		msg(3, 1, 2, base.Add(2*time.Minute), false),
	}

	partners := ConversationPartners(1, messages)
	if len(partners) != 2 || partners[0] != 2 || partners[1] != 3 {
		t.Fatalf("expected partners [2 3], got %v", partners)
	}
}

func TestCountUnread(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []models.RoommateMessage{
		msg(1, 2, 1, base, false),
		msg(2, 2, 1, base.Add(time.Minute), true),
		msg(3, 3, 1, base.Add(2*time.Minute), false),
		msg(4, 1, 2, base.Add(3*time.Minute), false), // sent by us, never counts
	}

	counts := CountUnread(1, messages)
	if counts[2] != 1 || counts[3] != 1 {
		t.Fatalf("unexpected unread counts: %v", counts)
	}
	if _, ok := counts[1]; ok {
		t.Fatalf("own sent messages must not be counted: %v", counts)
	}
}
