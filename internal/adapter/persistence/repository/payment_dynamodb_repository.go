package repository

import (
	"context"
	"errors"
	"time"

	"aulaplus/internal/domain/entities"
	"aulaplus/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsUserIDIndex      = "user_id-index"
)

type paymentItem struct {
	ID                     string                 `dynamodbav:"id"`
	UserID                 string                 `dynamodbav:"user_id"`
	CourseID               string                 `dynamodbav:"course_id"`
	Amount                 float64                `dynamodbav:"amount"`
	Currency               string                 `dynamodbav:"currency"`
	Status                 string                 `dynamodbav:"status"`
	Method                 string                 `dynamodbav:"method"`
	Months                 int                    `dynamodbav:"months"`
	CreatedAt              string                 `dynamodbav:"created_at"`
	ExtraQuestionPack      bool                   `dynamodbav:"extra_question_pack,omitempty"`
	ExtraQuestionPackPrice float64                `dynamodbav:"extra_question_pack_price,omitempty"`
	ProviderPayload        map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw     string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, the provider's external payment id)
//   - GSI: user_id-index (PK: user_id)
//
// The conditional put on Create is what enforces at-most-once recording per
// external payment id under concurrent webhook redelivery.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
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
		if isConditionalCheckFailed(err) {
			return entities.Payment{}, entities.ErrPaymentAlreadyRecorded
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                     p.ID,
		UserID:                 p.UserID,
		CourseID:               p.CourseID,
		Amount:                 p.Amount,
		Currency:               p.Currency,
		Status:                 string(p.Status),
		Method:                 p.Method,
		Months:                 p.Months,
		CreatedAt:              p.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExtraQuestionPack:      p.ExtraQuestionPack,
		ExtraQuestionPackPrice: p.ExtraQuestionPackPrice,
		ProviderPayload:        p.ProviderPayload,
		ProviderPayloadRaw:     string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:                     it.ID,
		UserID:                 it.UserID,
		CourseID:               it.CourseID,
		Amount:                 it.Amount,
		Currency:               it.Currency,
		Status:                 entities.PaymentStatus(it.Status),
		Method:                 it.Method,
		Months:                 it.Months,
		CreatedAt:              createdAt,
		ExtraQuestionPack:      it.ExtraQuestionPack,
		ExtraQuestionPackPrice: it.ExtraQuestionPackPrice,
		ProviderPayload:        it.ProviderPayload,
		ProviderPayloadRaw:     []byte(it.ProviderPayloadRaw),
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
