package services

import (
	"sort"

	"homefind-server/models"
)

// MergeMessages combines independently fetched message streams (the bulk
// fetch of sent and received rows, plus anything delivered over the realtime
// channel in the meantime) into one chronological list. Duplicates are
// dropped by message ID, keeping the first occurrence; ordering ties on
// created_at fall back to ID so the result is stable.
func MergeMessages(streams ...[]models.RoommateMessage) []models.RoommateMessage {
	seen := make(map[uint]struct{})
	merged := make([]models.RoommateMessage, 0)

	for _, stream := range streams {
		for _, msg := range stream {
			if _, dup := seen[msg.ID]; dup {
				continue
			}
			seen[msg.ID] = struct{}{}
			merged = append(merged, msg)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})

	return merged
}

// ConversationPartners lists the distinct other user in each conversation
// the given user participates in, in first-contact order.
func ConversationPartners(userID uint, messages []models.RoommateMessage) []uint {
	seen := make(map[uint]struct{})
	partners := make([]uint, 0)

	for _, msg := range messages {
		other := msg.SenderID
		if msg.SenderID == userID {
			other = msg.RecipientID
		}
		if other == userID {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		partners = append(partners, other)
	}

	return partners
}

// CountUnread tallies unread messages addressed to the user, per sender.
func CountUnread(userID uint, messages []models.RoommateMessage) map[uint]int {
	counts := make(map[uint]int)
	for _, msg := range messages {
		if msg.RecipientID == userID && !msg.Read {
			counts[msg.SenderID]++
		}
	}
	return counts
}
