package repository

import (
	"context"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultClientsTableName = "clients"

type clientItem struct {
	ID                   string `dynamodbav:"id"`
	Name                 string `dynamodbav:"name"`
	Email                string `dynamodbav:"email"`
	Phone                string `dynamodbav:"phone,omitempty"`
	ReferredByProviderID string `dynamodbav:"referred_by_provider_id,omitempty"`
	CreatedAt            string `dynamodbav:"created_at"`
}

type ClientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.ClientProfile) (entities.ClientProfile, error) {
	av, err := attributevalue.MarshalMap(clientItem{
		ID:                   c.ID,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                c.Phone,
		ReferredByProviderID: c.ReferredByProviderID,
		CreatedAt:            formatTime(c.CreatedAt),
	})
	if err != nil {
		return entities.ClientProfile{}, err
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
		return entities.ClientProfile{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.ClientProfile, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ClientProfile{}, err
	}
	if len(out.Item) == 0 {
		return entities.ClientProfile{}, nil
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ClientProfile{}, err
	}
	return entities.ClientProfile{
		ID:                   it.ID,
		Name:                 it.Name,
		Email:                it.Email,
		Phone:                it.Phone,
		ReferredByProviderID: it.ReferredByProviderID,
		CreatedAt:            parseTime(it.CreatedAt),
	}, nil
}
