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
	defaultProvidersTableName  = "providers"
	providersReferralCodeIndex = "referral_code-index"
	providersStatusIndex       = "status-index"
)

type providerItem struct {
	ID              string   `dynamodbav:"id"`
	UserID          string   `dynamodbav:"user_id,omitempty"`
	ResponsibleName string   `dynamodbav:"responsible_name"`
	TradeName       string   `dynamodbav:"trade_name,omitempty"`
	Bio             string   `dynamodbav:"bio,omitempty"`
	Phone           string   `dynamodbav:"phone,omitempty"`
	Email           string   `dynamodbav:"email"`
	City            string   `dynamodbav:"city"`
	State           string   `dynamodbav:"state"`
	Latitude        *float64 `dynamodbav:"latitude,omitempty"`
	Longitude       *float64 `dynamodbav:"longitude,omitempty"`
	ServicesOffered []string `dynamodbav:"services_offered,omitempty"`
	Status          string   `dynamodbav:"status"`
	IsBusy          bool     `dynamodbav:"is_busy"`
	WalletBalance   float64  `dynamodbav:"wallet_balance"`
	PendingBalance  float64  `dynamodbav:"pending_balance"`
	Rating          float64  `dynamodbav:"rating"`
	TotalReviews    int      `dynamodbav:"total_reviews"`
	TotalServices   int      `dynamodbav:"total_services"`
	TotalReferrals  int      `dynamodbav:"total_referrals"`
	PixKey          string   `dynamodbav:"pix_key,omitempty"`
	ReferralCode    string   `dynamodbav:"referral_code"`
	ReferrerID      string   `dynamodbav:"referrer_id,omitempty"`
	CreatedAt       string   `dynamodbav:"created_at"`
	UpdatedAt       string   `dynamodbav:"updated_at"`
}

// ProviderDynamoRepository persists Provider entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: referral_code-index (PK: referral_code)
//   - GSI: status-index (PK: status)
//
// The review aggregate and wallet balance updates are conditional writes so
// concurrent mutations fail the condition instead of silently losing data.

type ProviderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProviderRepository = (*ProviderDynamoRepository)(nil)

func NewProviderDynamoRepository(ddb *dynamodb.Client) *ProviderDynamoRepository {
	return &ProviderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROVIDERS_TABLE", defaultProvidersTableName),
	}
}

func (r *ProviderDynamoRepository) Create(ctx context.Context, p entities.Provider) (entities.Provider, error) {
	av, err := attributevalue.MarshalMap(toProviderItem(p))
	if err != nil {
		return entities.Provider{}, err
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
		return entities.Provider{}, err
	}
	return p, nil
}

func (r *ProviderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Provider, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Provider{}, err
	}
	if len(out.Item) == 0 {
		return entities.Provider{}, nil
	}

	var it providerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Provider{}, err
	}
	return fromProviderItem(it), nil
}

func (r *ProviderDynamoRepository) GetByReferralCode(ctx context.Context, code string) (entities.Provider, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(providersReferralCodeIndex),
		KeyConditionExpression: aws.String("referral_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Provider{}, err
	}
	if len(out.Items) == 0 {
		return entities.Provider{}, nil
	}

	var it providerItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Provider{}, err
	}
	return fromProviderItem(it), nil
}

func (r *ProviderDynamoRepository) ListByStatus(ctx context.Context, status entities.ProviderStatus) ([]entities.Provider, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(providersStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		return nil, err
	}

	providers := make([]entities.Provider, 0, len(out.Items))
	for _, raw := range out.Items {
		var it providerItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		providers = append(providers, fromProviderItem(it))
	}
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].CreatedAt.Before(providers[j].CreatedAt)
	})
	return providers, nil
}

func (r *ProviderDynamoRepository) UpdateSettings(ctx context.Context, id string, s entities.ProviderSettings) (entities.Provider, error) {
	services, err := attributevalue.Marshal(s.ServicesOffered)
	if err != nil {
		return entities.Provider{}, err
	}
	return r.update(ctx, id,
		"SET #trade_name = :trade_name, #bio = :bio, #phone = :phone, #pix_key = :pix_key, #city = :city, #state = :state, #services_offered = :services_offered, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":trade_name":       &types.AttributeValueMemberS{Value: s.TradeName},
			":bio":              &types.AttributeValueMemberS{Value: s.Bio},
			":phone":            &types.AttributeValueMemberS{Value: s.Phone},
			":pix_key":          &types.AttributeValueMemberS{Value: s.PixKey},
			":city":             &types.AttributeValueMemberS{Value: s.City},
			":state":            &types.AttributeValueMemberS{Value: s.State},
			":services_offered": services,
			":updated_at":       &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#trade_name":       "trade_name",
			"#bio":              "bio",
			"#phone":            "phone",
			"#pix_key":          "pix_key",
			"#city":             "city",
			"#state":            "state",
			"#services_offered": "services_offered",
			"#updated_at":       "updated_at",
		},
		"",
	)
}

func (r *ProviderDynamoRepository) SetBusy(ctx context.Context, id string, busy bool) (entities.Provider, error) {
	return r.update(ctx, id,
		"SET #is_busy = :is_busy, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":is_busy":    &types.AttributeValueMemberBOOL{Value: busy},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#is_busy":    "is_busy",
			"#updated_at": "updated_at",
		},
		"",
	)
}

func (r *ProviderDynamoRepository) IncrementReferrals(ctx context.Context, id string) error {
	_, err := r.update(ctx, id,
		"SET #updated_at = :updated_at ADD #total_referrals :one",
		map[string]types.AttributeValue{
			":one":        &types.AttributeValueMemberN{Value: "1"},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#total_referrals": "total_referrals",
			"#updated_at":      "updated_at",
		},
		"",
	)
	return err
}

// ApplyReview folds one review into the aggregate only when (rating,
// total_reviews) still match the values the caller computed from. A lost
// condition returns a zero Provider; the caller re-reads and retries.
func (r *ProviderDynamoRepository) ApplyReview(ctx context.Context, id string, expectedRating float64, expectedReviews int, newRating float64) (entities.Provider, error) {
	return r.update(ctx, id,
		"SET #rating = :new_rating, #updated_at = :updated_at ADD #total_reviews :one, #total_services :one",
		map[string]types.AttributeValue{
			":new_rating":       &types.AttributeValueMemberN{Value: floatToString(newRating)},
			":one":              &types.AttributeValueMemberN{Value: "1"},
			":expected_rating":  &types.AttributeValueMemberN{Value: floatToString(expectedRating)},
			":expected_reviews": &types.AttributeValueMemberN{Value: floatToString(float64(expectedReviews))},
			":updated_at":       &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#rating":         "rating",
			"#total_reviews":  "total_reviews",
			"#total_services": "total_services",
			"#updated_at":     "updated_at",
		},
		"#rating = :expected_rating AND #total_reviews = :expected_reviews",
	)
}

// UpdateWalletBalance swaps the balance only when it still equals expected,
// so a withdrawal cannot erase a settlement credit that landed in between.
func (r *ProviderDynamoRepository) UpdateWalletBalance(ctx context.Context, id string, expected, newBalance float64) (entities.Provider, error) {
	return r.update(ctx, id,
		"SET #wallet_balance = :new_balance, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":new_balance": &types.AttributeValueMemberN{Value: floatToString(newBalance)},
			":expected":    &types.AttributeValueMemberN{Value: floatToString(expected)},
			":updated_at":  &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#wallet_balance": "wallet_balance",
			"#updated_at":     "updated_at",
		},
		"#wallet_balance = :expected",
	)
}

func (r *ProviderDynamoRepository) CreditPendingBalance(ctx context.Context, id string, amount float64) (entities.Provider, error) {
	return r.update(ctx, id,
		"SET #updated_at = :updated_at ADD #pending_balance :amount",
		map[string]types.AttributeValue{
			":amount":     &types.AttributeValueMemberN{Value: floatToString(amount)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#pending_balance": "pending_balance",
			"#updated_at":      "updated_at",
		},
		"",
	)
}

func (r *ProviderDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
	extraCondition string,
) (entities.Provider, error) {
	condition := "attribute_exists(#id)"
	if extraCondition != "" {
		condition += " AND " + extraCondition
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Provider{}, nil
		}
		return entities.Provider{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Provider{}, nil
	}
	var it providerItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Provider{}, err
	}
	return fromProviderItem(it), nil
}

func toProviderItem(p entities.Provider) providerItem {
	return providerItem{
		ID:              p.ID,
		UserID:          p.UserID,
		ResponsibleName: p.ResponsibleName,
		TradeName:       p.TradeName,
		Bio:             p.Bio,
		Phone:           p.Phone,
		Email:           p.Email,
		City:            p.City,
		State:           p.State,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		ServicesOffered: p.ServicesOffered,
		Status:          string(p.Status),
		IsBusy:          p.IsBusy,
		WalletBalance:   p.WalletBalance,
		PendingBalance:  p.PendingBalance,
		Rating:          p.Rating,
		TotalReviews:    p.TotalReviews,
		TotalServices:   p.TotalServices,
		TotalReferrals:  p.TotalReferrals,
		PixKey:          p.PixKey,
		ReferralCode:    p.ReferralCode,
		ReferrerID:      p.ReferrerID,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func fromProviderItem(it providerItem) entities.Provider {
	return entities.Provider{
		ID:              it.ID,
		UserID:          it.UserID,
		ResponsibleName: it.ResponsibleName,
		TradeName:       it.TradeName,
		Bio:             it.Bio,
		Phone:           it.Phone,
		Email:           it.Email,
		City:            it.City,
		State:           it.State,
		Latitude:        it.Latitude,
		Longitude:       it.Longitude,
		ServicesOffered: it.ServicesOffered,
		Status:          entities.ProviderStatus(it.Status),
		IsBusy:          it.IsBusy,
		WalletBalance:   it.WalletBalance,
		PendingBalance:  it.PendingBalance,
		Rating:          it.Rating,
		TotalReviews:    it.TotalReviews,
		TotalServices:   it.TotalServices,
		TotalReferrals:  it.TotalReferrals,
		PixKey:          it.PixKey,
		ReferralCode:    it.ReferralCode,
		ReferrerID:      it.ReferrerID,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
