package services

import (
	"encoding/json"
	"fmt"
	"log"

	"homefind-server/models"
	"homefind-server/storage"
	"homefind-server/utils"
)

// NotificationService handles push notification delivery.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData is the data payload attached to a push notification for
// client-side deep linking.
type NotificationData struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	PropertyID string `json:"propertyId,omitempty"`
	UserID     string `json:"userId,omitempty"`
	Screen     string `json:"screen"`
	Params     string `json:"params"`
}

func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}

	return tokens, nil
}

// SendNotificationToUser fans a notification out to all of a user's devices.
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		return err
	}

	dataMap := map[string]string{
		"type":       data.Type,
		"id":         data.ID,
		"propertyId": data.PropertyID,
		"userId":     data.UserID,
		"screen":     data.Screen,
		"params":     data.Params,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}

	return lastError
}

// SendRoommateMessageNotification notifies the recipient of a new roommate
// chat message.
func (ns *NotificationService) SendRoommateMessageNotification(recipientID, senderID, propertyID uint, senderName string) error {
	title := "New Message"
	body := fmt.Sprintf("%s sent you a message", senderName)

	params := fmt.Sprintf(`{"senderId": %d, "propertyId": %d}`, senderID, propertyID)
	data := NotificationData{
		Type:       "roommate_message",
		UserID:     fmt.Sprintf("%d", senderID),
		PropertyID: fmt.Sprintf("%d", propertyID),
		Screen:     "RoommateChat",
		Params:     params,
	}

	return ns.SendNotificationToUser(recipientID, title, body, data)
}

// SendBookingNotificationToOwner notifies a PG owner that a student booked
// or updated a slot at their property.
func (ns *NotificationService) SendBookingNotificationToOwner(ownerID, studentID, propertyID uint, studentName, propertyTitle string) error {
	title := "New PG Booking"
	body := fmt.Sprintf("%s submitted a booking for %s", studentName, propertyTitle)

	params := fmt.Sprintf(`{"propertyId": %d, "studentId": %d}`, propertyID, studentID)
	data := NotificationData{
		Type:       "pg_booking",
		ID:         fmt.Sprintf("%d", propertyID),
		PropertyID: fmt.Sprintf("%d", propertyID),
		UserID:     fmt.Sprintf("%d", studentID),
		Screen:     "OwnerBookings",
		Params:     params,
	}

	err := ns.SendNotificationToUser(ownerID, title, body, data)
	if err != nil {
		log.Printf("Failed to send booking notification to owner %d: %v", ownerID, err)
	}
	return err
}
