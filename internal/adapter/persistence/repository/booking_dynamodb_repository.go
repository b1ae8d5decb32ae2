package repository

import (
	"context"
	"errors"
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
	defaultBookingsTableName = "bookings"
	bookingsProviderIndex    = "provider_id-index"
	bookingsClientIndex      = "client_id-index"
)

type bookingItem struct {
	ID             string  `dynamodbav:"id"`
	ProviderID     string  `dynamodbav:"provider_id"`
	ClientID       string  `dynamodbav:"client_id"`
	QuoteID        string  `dynamodbav:"quote_id,omitempty"`
	ConversationID string  `dynamodbav:"conversation_id,omitempty"`
	ServiceName    string  `dynamodbav:"service_name"`
	TotalAmount    float64 `dynamodbav:"total_amount"`
	Status         string  `dynamodbav:"status"`
	PaymentStatus  string  `dynamodbav:"payment_status"`
	StartedAt      string  `dynamodbav:"started_at,omitempty"`
	CompletedAt    string  `dynamodbav:"completed_at,omitempty"`
	Rating         *int    `dynamodbav:"rating,omitempty"`
	Review         string  `dynamodbav:"review,omitempty"`
	CreatedAt      string  `dynamodbav:"created_at"`
	UpdatedAt      string  `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// The rating attribute is absent until the client reviews; SetReview writes
// it behind attribute_not_exists so a second review loses the condition and
// comes back as a zero Booking.

type BookingDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb *dynamodb.Client) *BookingDynamoRepository {
	return &BookingDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BOOKINGS_TABLE", defaultBookingsTableName),
	}
}

func (r *BookingDynamoRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	av, err := attributevalue.MarshalMap(toBookingItem(b))
	if err != nil {
		return entities.Booking{}, err
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
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}

	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func (r *BookingDynamoRepository) GetActiveByProviderAndClient(ctx context.Context, providerID, clientID string) (entities.Booking, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(bookingsProviderIndex),
		KeyConditionExpression: aws.String("provider_id = :provider_id"),
		FilterExpression:       aws.String("client_id = :client_id AND #status IN (:confirmed, :in_progress, :waiting)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":provider_id": &types.AttributeValueMemberS{Value: providerID},
			":client_id":   &types.AttributeValueMemberS{Value: clientID},
			":confirmed":   &types.AttributeValueMemberS{Value: string(entities.BookingStatusConfirmed)},
			":in_progress": &types.AttributeValueMemberS{Value: string(entities.BookingStatusInProgress)},
			":waiting":     &types.AttributeValueMemberS{Value: string(entities.BookingStatusWaitingClient)},
		},
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Items) == 0 {
		return entities.Booking{}, nil
	}

	bookings := make([]entities.Booking, 0, len(out.Items))
	for _, raw := range out.Items {
		var it bookingItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.Booking{}, err
		}
		bookings = append(bookings, fromBookingItem(it))
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings[0], nil
}

func (r *BookingDynamoRepository) ListByProviderID(ctx context.Context, providerID string) ([]entities.Booking, error) {
	return r.queryBookings(ctx, bookingsProviderIndex, "provider_id", providerID)
}

func (r *BookingDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Booking, error) {
	return r.queryBookings(ctx, bookingsClientIndex, "client_id", clientID)
}

func (r *BookingDynamoRepository) queryBookings(ctx context.Context, index, key, value string) ([]entities.Booking, error) {
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

	bookings := make([]entities.Booking, 0, len(out.Items))
	for _, raw := range out.Items {
		var it bookingItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		bookings = append(bookings, fromBookingItem(it))
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *BookingDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus, startedAt, completedAt *time.Time) (entities.Booking, error) {
	expr := "SET #status = :status, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
	}
	if startedAt != nil {
		expr += ", #started_at = :started_at"
		names["#started_at"] = "started_at"
		values[":started_at"] = &types.AttributeValueMemberS{Value: formatTime(*startedAt)}
	}
	if completedAt != nil {
		expr += ", #completed_at = :completed_at"
		names["#completed_at"] = "completed_at"
		values[":completed_at"] = &types.AttributeValueMemberS{Value: formatTime(*completedAt)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}

	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func (r *BookingDynamoRepository) SetReview(ctx context.Context, id string, rating int, review string) (entities.Booking, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#rating)"),
		UpdateExpression:    aws.String("SET #rating = :rating, #review = :review, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#rating":     "rating",
			"#review":     "review",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rating":     &types.AttributeValueMemberN{Value: floatToString(float64(rating))},
			":review":     &types.AttributeValueMemberS{Value: review},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}

	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func toBookingItem(b entities.Booking) bookingItem {
	var rating *int
	if b.Rating != 0 {
		rating = &b.Rating
	}
	return bookingItem{
		ID:             b.ID,
		ProviderID:     b.ProviderID,
		ClientID:       b.ClientID,
		QuoteID:        b.QuoteID,
		ConversationID: b.ConversationID,
		ServiceName:    b.ServiceName,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		StartedAt:      formatTimePtr(b.StartedAt),
		CompletedAt:    formatTimePtr(b.CompletedAt),
		Rating:         rating,
		Review:         b.Review,
		CreatedAt:      formatTime(b.CreatedAt),
		UpdatedAt:      formatTime(b.UpdatedAt),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	rating := 0
	if it.Rating != nil {
		rating = *it.Rating
	}
	return entities.Booking{
		ID:             it.ID,
		ProviderID:     it.ProviderID,
		ClientID:       it.ClientID,
		QuoteID:        it.QuoteID,
		ConversationID: it.ConversationID,
		ServiceName:    it.ServiceName,
		TotalAmount:    it.TotalAmount,
		Status:         entities.BookingStatus(it.Status),
		PaymentStatus:  entities.PaymentStatus(it.PaymentStatus),
		StartedAt:      parseTimePtr(it.StartedAt),
		CompletedAt:    parseTimePtr(it.CompletedAt),
		Rating:         rating,
		Review:         it.Review,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
