package repository

import (
	"context"
	"sort"
	"time"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultConversationsTableName = "conversations"
	defaultMessagesTableName      = "messages"
	conversationsClientIndex      = "client_id-index"
	conversationsProviderIndex    = "provider_id-index"
	conversationsQuoteIndex       = "quote_request_id-index"
	messagesConversationIndex     = "conversation_id-index"
)

type conversationItem struct {
	ID                 string `dynamodbav:"id"`
	ClientID           string `dynamodbav:"client_id"`
	ProviderID         string `dynamodbav:"provider_id"`
	QuoteRequestID     string `dynamodbav:"quote_request_id"`
	Status             string `dynamodbav:"status"`
	LastMessage        string `dynamodbav:"last_message,omitempty"`
	LastMessageAt      string `dynamodbav:"last_message_at,omitempty"`
	ClientLastReadAt   string `dynamodbav:"client_last_read_at,omitempty"`
	ProviderLastReadAt string `dynamodbav:"provider_last_read_at,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

type messageItem struct {
	ID             string `dynamodbav:"id"`
	ConversationID string `dynamodbav:"conversation_id"`
	SenderID       string `dynamodbav:"sender_id"`
	Content        string `dynamodbav:"content"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// ConversationDynamoRepository persists conversations and their messages in
// two DynamoDB tables. Message ordering is resolved in code after the GSI
// query because the index is keyed on conversation_id alone.

type ConversationDynamoRepository struct {
	ddb               *dynamodb.Client
	tableName         string
	messagesTableName string
}

var _ interfaces.IConversationRepository = (*ConversationDynamoRepository)(nil)

func NewConversationDynamoRepository(ddb *dynamodb.Client) *ConversationDynamoRepository {
	return &ConversationDynamoRepository{
		ddb:               ddb,
		tableName:         getenvDefault("CONVERSATIONS_TABLE", defaultConversationsTableName),
		messagesTableName: getenvDefault("MESSAGES_TABLE", defaultMessagesTableName),
	}
}

func (r *ConversationDynamoRepository) Create(ctx context.Context, c entities.Conversation) (entities.Conversation, error) {
	av, err := attributevalue.MarshalMap(toConversationItem(c))
	if err != nil {
		return entities.Conversation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Conversation{}, err
	}
	return c, nil
}

func (r *ConversationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Conversation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Conversation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Conversation{}, nil
	}

	var it conversationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Conversation{}, err
	}
	return fromConversationItem(it), nil
}

func (r *ConversationDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Conversation, error) {
	return r.queryConversations(ctx, conversationsClientIndex, "client_id", clientID)
}

func (r *ConversationDynamoRepository) ListByProviderID(ctx context.Context, providerID string) ([]entities.Conversation, error) {
	return r.queryConversations(ctx, conversationsProviderIndex, "provider_id", providerID)
}

func (r *ConversationDynamoRepository) ListByQuoteRequestID(ctx context.Context, quoteRequestID string) ([]entities.Conversation, error) {
	return r.queryConversations(ctx, conversationsQuoteIndex, "quote_request_id", quoteRequestID)
}

func (r *ConversationDynamoRepository) queryConversations(ctx context.Context, index, key, value string) ([]entities.Conversation, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#key = :value"),
		ExpressionAttributeNames: map[string]string{
			"#key": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}

	conversations := make([]entities.Conversation, 0, len(out.Items))
	for _, raw := range out.Items {
		var it conversationItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		conversations = append(conversations, fromConversationItem(it))
	}
	// Most recent activity first, the way a chat list renders.
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})
	return conversations, nil
}

func (r *ConversationDynamoRepository) SetStatus(ctx context.Context, id string, status entities.ConversationStatus) (entities.Conversation, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Conversation{}, err
	}

	var it conversationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Conversation{}, err
	}
	return fromConversationItem(it), nil
}

func (r *ConversationDynamoRepository) SetLastMessage(ctx context.Context, id, lastMessage string, at time.Time) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #last_message = :last_message, #last_message_at = :last_message_at, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":              "id",
			"#last_message":    "last_message",
			"#last_message_at": "last_message_at",
			"#updated_at":      "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":last_message":    &types.AttributeValueMemberS{Value: lastMessage},
			":last_message_at": &types.AttributeValueMemberS{Value: formatTime(at)},
			":updated_at":      &types.AttributeValueMemberS{Value: formatTime(at)},
		},
	})
	return err
}

// MarkRead stamps the reader's side of the conversation. Which side is
// picked by comparing readerID against the stored participant ids.
func (r *ConversationDynamoRepository) MarkRead(ctx context.Context, id, readerID string, at time.Time) error {
	conv, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if conv.ID == "" {
		return nil
	}

	field := "client_last_read_at"
	if readerID == conv.ProviderID {
		field = "provider_last_read_at"
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #read_at = :read_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#read_at": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":read_at": &types.AttributeValueMemberS{Value: formatTime(at)},
		},
	})
	return err
}

func (r *ConversationDynamoRepository) CreateMessage(ctx context.Context, m entities.Message) (entities.Message, error) {
	av, err := attributevalue.MarshalMap(messageItem{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      formatTime(m.CreatedAt),
	})
	if err != nil {
		return entities.Message{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.messagesTableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Message{}, err
	}
	return m, nil
}

func (r *ConversationDynamoRepository) ListMessagesByConversationID(ctx context.Context, conversationID string) ([]entities.Message, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.messagesTableName),
		IndexName:              aws.String(messagesConversationIndex),
		KeyConditionExpression: aws.String("conversation_id = :conversation_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
	})
	if err != nil {
		return nil, err
	}

	messages := make([]entities.Message, 0, len(out.Items))
	for _, raw := range out.Items {
		var it messageItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		messages = append(messages, entities.Message{
			ID:             it.ID,
			ConversationID: it.ConversationID,
			SenderID:       it.SenderID,
			Content:        it.Content,
			CreatedAt:      parseTime(it.CreatedAt),
		})
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func toConversationItem(c entities.Conversation) conversationItem {
	return conversationItem{
		ID:                 c.ID,
		ClientID:           c.ClientID,
		ProviderID:         c.ProviderID,
		QuoteRequestID:     c.QuoteRequestID,
		Status:             string(c.Status),
		LastMessage:        c.LastMessage,
		LastMessageAt:      formatOptionalTime(c.LastMessageAt),
		ClientLastReadAt:   formatOptionalTime(c.ClientLastReadAt),
		ProviderLastReadAt: formatOptionalTime(c.ProviderLastReadAt),
		CreatedAt:          formatTime(c.CreatedAt),
		UpdatedAt:          formatTime(c.UpdatedAt),
	}
}

func fromConversationItem(it conversationItem) entities.Conversation {
	return entities.Conversation{
		ID:                 it.ID,
		ClientID:           it.ClientID,
		ProviderID:         it.ProviderID,
		QuoteRequestID:     it.QuoteRequestID,
		Status:             entities.ConversationStatus(it.Status),
		LastMessage:        it.LastMessage,
		LastMessageAt:      parseTime(it.LastMessageAt),
		ClientLastReadAt:   parseTime(it.ClientLastReadAt),
		ProviderLastReadAt: parseTime(it.ProviderLastReadAt),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
