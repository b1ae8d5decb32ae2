package repository

import (
	"context"
	"sort"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuoteRequestsTableName = "quote_requests"
	defaultQuoteOffersTableName   = "quote_offers"
	offersConversationIndex       = "conversation_id-index"
)

type quoteRequestItem struct {
	ID          string   `dynamodbav:"id"`
	ClientID    string   `dynamodbav:"client_id"`
	ServiceName string   `dynamodbav:"service_name"`
	Description string   `dynamodbav:"description"`
	MediaURLs   []string `dynamodbav:"media_urls,omitempty"`
	Latitude    *float64 `dynamodbav:"latitude,omitempty"`
	Longitude   *float64 `dynamodbav:"longitude,omitempty"`
	Address     string   `dynamodbav:"address,omitempty"`
	Status      string   `dynamodbav:"status"`
	CreatedAt   string   `dynamodbav:"created_at"`
}

type quoteOfferItem struct {
	ID             string  `dynamodbav:"id"`
	ConversationID string  `dynamodbav:"conversation_id"`
	ProviderID     string  `dynamodbav:"provider_id"`
	Amount         float64 `dynamodbav:"amount"`
	Description    string  `dynamodbav:"description,omitempty"`
	CreatedAt      string  `dynamodbav:"created_at"`
}

type QuoteDynamoRepository struct {
	ddb             *dynamodb.Client
	tableName       string
	offersTableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:             ddb,
		tableName:       getenvDefault("QUOTE_REQUESTS_TABLE", defaultQuoteRequestsTableName),
		offersTableName: getenvDefault("QUOTE_OFFERS_TABLE", defaultQuoteOffersTableName),
	}
}

func (r *QuoteDynamoRepository) CreateRequest(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	av, err := attributevalue.MarshalMap(quoteRequestItem{
		ID:          q.ID,
		ClientID:    q.ClientID,
		ServiceName: q.ServiceName,
		Description: q.Description,
		MediaURLs:   q.MediaURLs,
		Latitude:    q.Latitude,
		Longitude:   q.Longitude,
		Address:     q.Address,
		Status:      string(q.Status),
		CreatedAt:   formatTime(q.CreatedAt),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
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
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetRequestByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteRequest{}, nil
	}

	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return entities.QuoteRequest{
		ID:          it.ID,
		ClientID:    it.ClientID,
		ServiceName: it.ServiceName,
		Description: it.Description,
		MediaURLs:   it.MediaURLs,
		Latitude:    it.Latitude,
		Longitude:   it.Longitude,
		Address:     it.Address,
		Status:      entities.QuoteRequestStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
	}, nil
}

func (r *QuoteDynamoRepository) CreateOffer(ctx context.Context, o entities.QuoteOffer) (entities.QuoteOffer, error) {
	av, err := attributevalue.MarshalMap(quoteOfferItem{
		ID:             o.ID,
		ConversationID: o.ConversationID,
		ProviderID:     o.ProviderID,
		Amount:         o.Amount,
		Description:    o.Description,
		CreatedAt:      formatTime(o.CreatedAt),
	})
	if err != nil {
		return entities.QuoteOffer{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.offersTableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.QuoteOffer{}, err
	}
	return o, nil
}

func (r *QuoteDynamoRepository) GetOfferByID(ctx context.Context, id string) (entities.QuoteOffer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.offersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteOffer{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteOffer{}, nil
	}

	var it quoteOfferItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuoteOffer{}, err
	}
	return fromQuoteOfferItem(it), nil
}

func (r *QuoteDynamoRepository) ListOffersByConversationID(ctx context.Context, conversationID string) ([]entities.QuoteOffer, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.offersTableName),
		IndexName:              aws.String(offersConversationIndex),
		KeyConditionExpression: aws.String("conversation_id = :conversation_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
	})
	if err != nil {
		return nil, err
	}

	offers := make([]entities.QuoteOffer, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteOfferItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		offers = append(offers, fromQuoteOfferItem(it))
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt.Before(offers[j].CreatedAt)
	})
	return offers, nil
}

func fromQuoteOfferItem(it quoteOfferItem) entities.QuoteOffer {
	return entities.QuoteOffer{
		ID:             it.ID,
		ConversationID: it.ConversationID,
		ProviderID:     it.ProviderID,
		Amount:         it.Amount,
		Description:    it.Description,
		CreatedAt:      parseTime(it.CreatedAt),
	}
}
