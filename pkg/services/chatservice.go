package services

import (
	"context"
	"fmt"
	"time"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/util"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatGreetingText = "Hello! Welcome to Alternus Gallery. How can we help you today?"

type ChatServiceImpl struct {
	chatCollection *mongo.Collection
}

func NewChatService(db *mongo.Database) ChatService {
	return &ChatServiceImpl{
		chatCollection: db.Collection("Chat"),
	}
}

// StartChat creates a conversation for a visitor and seeds it with the
// support greeting.
func (cs *ChatServiceImpl) StartChat(ctx context.Context, name, email string) (*models.Chat, error) {
	if common.IsEmptyString(name) {
		return nil, fmt.Errorf("a display name is required to start a chat")
	}

	now := time.Now()
	chatID := uuid.NewString()

	greeting := models.ChatMessage{
		Id:         uuid.NewString(),
		ChatId:     chatID,
		Text:       chatGreetingText,
		Sender:     models.SenderSupport,
		SenderName: common.CHAT_GREETING_NAME,
		Timestamp:  now,
		Read:       true,
	}

	chat := models.Chat{
		Id:            chatID,
		VisitorName:   name,
		VisitorEmail:  email,
		Messages:      []models.ChatMessage{greeting},
		CreatedAt:     now,
		LastMessageAt: now,
		UnreadCount:   0,
	}

	if _, err := cs.chatCollection.InsertOne(ctx, chat); err != nil {
		return nil, err
	}

	return &chat, nil
}

// AppendMessage persists a message with a server-assigned id and timestamp
// and returns it. Visitor messages bump the unread count for the support
// side; support replies do not.
func (cs *ChatServiceImpl) AppendMessage(ctx context.Context, req models.ChatMessageRequest) (*models.ChatMessage, error) {
	if err := common.Validate.Struct(&req); err != nil {
		return nil, err
	}

	now := time.Now()
	message := models.ChatMessage{
		Id:          uuid.NewString(),
		ChatId:      req.ChatId,
		Text:        req.Text,
		Sender:      req.Sender,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Timestamp:   now,
	}

	update := bson.M{
		"$push": bson.M{"messages": message},
		"$set":  bson.M{"last_message_at": now},
	}
	if req.Sender == models.SenderUser {
		update["$inc"] = bson.M{"unread_count": 1}
	}

	result, err := cs.chatCollection.UpdateOne(ctx, bson.M{"_id": req.ChatId}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("chat not found")
	}

	return &message, nil
}

// GetChat returns the conversation with its messages filtered to those
// strictly after the since cursor. A zero since returns the full history.
func (cs *ChatServiceImpl) GetChat(ctx context.Context, chatID string, since time.Time) (*models.Chat, error) {
	var chat models.Chat
	if err := cs.chatCollection.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat); err != nil {
		return nil, fmt.Errorf("chat not found")
	}

	chat.Messages = FilterMessagesSince(chat.Messages, since)
	return &chat, nil
}

// ListChats returns conversations for the back-office, most recent activity
// first.
func (cs *ChatServiceImpl) ListChats(ctx context.Context, pagination util.PaginationArgs) ([]models.Chat, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Skip)).
		SetSort(util.GetLastMessageSortBson())

	cursor, err := cs.chatCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	chats := make([]models.Chat, 0)
	if err = cursor.All(ctx, &chats); err != nil {
		return nil, 0, err
	}

	count, err := cs.chatCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	return chats, count, nil
}

// MarkRead zeroes the unread counter and flags every message as read.
func (cs *ChatServiceImpl) MarkRead(ctx context.Context, chatID string) error {
	update := bson.M{"$set": bson.M{
		"unread_count":     0,
		"messages.$[].read": true,
	}}

	result, err := cs.chatCollection.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("chat not found")
	}

	return nil
}

// FilterMessagesSince keeps messages with timestamps strictly after the
// cursor, preserving order. A zero cursor keeps everything.
func FilterMessagesSince(messages []models.ChatMessage, since time.Time) []models.ChatMessage {
	if since.IsZero() {
		return messages
	}

	filtered := make([]models.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Timestamp.After(since) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
