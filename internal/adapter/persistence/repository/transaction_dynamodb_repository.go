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
	defaultTransactionsTableName = "transactions"
	transactionsProviderIndex    = "provider_id-index"
)

type transactionItem struct {
	ID          string  `dynamodbav:"id"`
	ProviderID  string  `dynamodbav:"provider_id,omitempty"`
	BookingID   string  `dynamodbav:"booking_id,omitempty"`
	Type        string  `dynamodbav:"type"`
	Status      string  `dynamodbav:"status"`
	Amount      float64 `dynamodbav:"amount"`
	Description string  `dynamodbav:"description"`
	CreatedAt   string  `dynamodbav:"created_at"`
}

// TransactionDynamoRepository is the append-only ledger table. There is no
// update path on purpose.

type TransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error) {
	av, err := attributevalue.MarshalMap(transactionItem{
		ID:          t.ID,
		ProviderID:  t.ProviderID,
		BookingID:   t.BookingID,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Amount:      t.Amount,
		Description: t.Description,
		CreatedAt:   formatTime(t.CreatedAt),
	})
	if err != nil {
		return entities.Transaction{}, err
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
		return entities.Transaction{}, err
	}
	return t, nil
}

func (r *TransactionDynamoRepository) ListByProviderID(ctx context.Context, providerID string) ([]entities.Transaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(transactionsProviderIndex),
		KeyConditionExpression: aws.String("provider_id = :provider_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":provider_id": &types.AttributeValueMemberS{Value: providerID},
		},
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]entities.Transaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it transactionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		transactions = append(transactions, entities.Transaction{
			ID:          it.ID,
			ProviderID:  it.ProviderID,
			BookingID:   it.BookingID,
			Type:        entities.TransactionType(it.Type),
			Status:      entities.TransactionStatus(it.Status),
			Amount:      it.Amount,
			Description: it.Description,
			CreatedAt:   parseTime(it.CreatedAt),
		})
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}
