package routes

import (
	"encoding/json"
	"fmt"
	"time"

	"homefind-server/models"
	"homefind-server/services"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

func messageChannel(propertyID uint) string {
	return fmt.Sprintf("roommate-messages:%d", propertyID)
}

func typingKey(propertyID, userID uint) string {
	return fmt.Sprintf("typing:%d:%d", propertyID, userID)
}

// SendRoommateMessage stores a directed message and fans it out on the
// property's realtime channel.
func SendRoommateMessage(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input SendRoommateMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.RecipientID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "You cannot message yourself", ctx)
		return
	}

	msg := models.RoommateMessage{
		SenderID:    claims.ID,
		RecipientID: input.RecipientID,
		PropertyID:  input.PropertyID,
		Message:     input.Message,
		Read:        false,
	}
	if err := storage.DB.Create(&msg).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", err.Error(), ctx)
		return
	}

	if payload, marshalErr := json.Marshal(&msg); marshalErr == nil {
		storage.Redis.Publish(ctx, messageChannel(input.PropertyID), payload)
	}

	sender := services.ResolveProfile(services.FetchProfileRelation(claims.ID))
	notificationService := services.NewNotificationService()
	go notificationService.SendRoommateMessageNotification(input.RecipientID, claims.ID, input.PropertyID, sender.Name)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(msg)
}

// ListRoommateMessages returns the requester's conversation history at a
// property: sent and received rows fetched independently and merged into one
// chronological, de-duplicated list.
func ListRoommateMessages(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	var sent []models.RoommateMessage
	if dbErr := storage.DB.Where("sender_id = ? AND property_id = ?", claims.ID, propertyID).
		Find(&sent).Error; dbErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to load messages", ctx)
		return
	}

	var received []models.RoommateMessage
	if dbErr := storage.DB.Where("recipient_id = ? AND property_id = ?", claims.ID, propertyID).
		Find(&received).Error; dbErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to load messages", ctx)
		return
	}

	messages := services.MergeMessages(sent, received)

	partners := make(map[uint]services.DisplayIdentity)
	for _, partnerID := range services.ConversationPartners(claims.ID, messages) {
		partners[partnerID] = services.ResolveProfile(services.FetchProfileRelation(partnerID))
	}

	ctx.JSON(iris.Map{
		"success":  true,
		"messages": messages,
		"partners": partners,
		"unread":   services.CountUnread(claims.ID, messages),
	})
}

// MarkMessageRead flips the read flag; only the recipient may do so.
func MarkMessageRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	result := storage.DB.Model(&models.RoommateMessage{}).
		Where("id = ? AND recipient_id = ?", id, claims.ID).
		Update("read", true)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Message not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// Typing sets a short-lived key so conversation partners can show a typing
// indicator; the key expires on its own after 5 seconds.
func Typing(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	storage.Redis.Set(ctx, typingKey(propertyID, claims.ID), "1", 5*time.Second)
	ctx.JSON(iris.Map{"success": true})
}

// IsTyping reports whether the given user is currently typing at a property.
func IsTyping(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}
	userID, err := ctx.Params().GetUint("userID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	exists, _ := storage.Redis.Exists(ctx, typingKey(propertyID, userID)).Result()
	ctx.JSON(iris.Map{"typing": exists > 0})
}

// StreamRoommateMessages pushes new messages for a property over
// server-sent events. The Redis subscription is tied to the request: when
// the client goes away the subscription is released with it.
func StreamRoommateMessages(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	pubsub := storage.Redis.Subscribe(ctx, messageChannel(propertyID))
	defer pubsub.Close()

	ctx.ContentType("text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	flusher, ok := ctx.ResponseWriter().Flusher()
	if !ok {
		ctx.StatusCode(iris.StatusNotImplemented)
		return
	}
	flusher.Flush()

	done := ctx.Request().Context().Done()
	events := pubsub.Channel()

	for {
		select {
		case <-done:
			return
		case event, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(ctx.ResponseWriter(), "data: %s\n\n", event.Payload)
			flusher.Flush()
		}
	}
}

type SendRoommateMessageInput struct {
	RecipientID uint   `json:"recipientID" validate:"required"`
	PropertyID  uint   `json:"propertyID" validate:"required"`
	Message     string `json:"message" validate:"required,max=5000"`
}
