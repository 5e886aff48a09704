package repository

import (
	"context"
	"time"

	"aulaplus/internal/domain/entities"
	"aulaplus/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEnrollmentsTableName = "enrollments"

type enrollmentItem struct {
	UserID             string  `dynamodbav:"user_id"`
	CourseID           string  `dynamodbav:"course_id"`
	Active             bool    `dynamodbav:"active"`
	PlanType           string  `dynamodbav:"plan_type,omitempty"`
	ExpiresAt          string  `dynamodbav:"expires_at,omitempty"`
	EnrolledAt         string  `dynamodbav:"enrolled_at"`
	ProgressPercentage float64 `dynamodbav:"progress_percentage"`
}

// EnrollmentDynamoRepository persists Enrollment entities in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: course_id (string)
//
// An absent expires_at attribute means unlimited access. Both writes are
// conditional: Create requires the pair to not exist yet, UpdateExpiry
// requires the stored expiry to match the one the caller read. A failed
// condition maps to entities.ErrEnrollmentConflict so the caller can re-read
// instead of silently overwriting a concurrent extension.

type EnrollmentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEnrollmentRepository = (*EnrollmentDynamoRepository)(nil)

func NewEnrollmentDynamoRepository(ddb *dynamodb.Client) *EnrollmentDynamoRepository {
	return &EnrollmentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ENROLLMENTS_TABLE", defaultEnrollmentsTableName),
	}
}

func (r *EnrollmentDynamoRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (entities.Enrollment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id":   &types.AttributeValueMemberS{Value: userID},
			"course_id": &types.AttributeValueMemberS{Value: courseID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Enrollment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Enrollment{}, nil
	}

	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Enrollment{}, err
	}
	return fromEnrollmentItem(it), nil
}

func (r *EnrollmentDynamoRepository) Create(ctx context.Context, e entities.Enrollment) (entities.Enrollment, error) {
	it := toEnrollmentItem(e)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Enrollment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(user_id) AND attribute_not_exists(course_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Enrollment{}, entities.ErrEnrollmentConflict
		}
		return entities.Enrollment{}, err
	}
	return e, nil
}

func (r *EnrollmentDynamoRepository) UpdateExpiry(ctx context.Context, userID, courseID string, newExpiresAt time.Time, prevExpiresAt *time.Time) (entities.Enrollment, error) {
	condition := "attribute_exists(user_id) AND expires_at = :prev"
	values := map[string]types.AttributeValue{
		":exp":    &types.AttributeValueMemberS{Value: newExpiresAt.UTC().Format(time.RFC3339Nano)},
		":active": &types.AttributeValueMemberBOOL{Value: true},
	}
	if prevExpiresAt != nil {
		values[":prev"] = &types.AttributeValueMemberS{Value: prevExpiresAt.UTC().Format(time.RFC3339Nano)}
	} else {
		condition = "attribute_exists(user_id) AND attribute_not_exists(expires_at)"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id":   &types.AttributeValueMemberS{Value: userID},
			"course_id": &types.AttributeValueMemberS{Value: courseID},
		},
		UpdateExpression:          aws.String("SET expires_at = :exp, active = :active"),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Enrollment{}, entities.ErrEnrollmentConflict
		}
		return entities.Enrollment{}, err
	}

	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Enrollment{}, err
	}
	return fromEnrollmentItem(it), nil
}

func toEnrollmentItem(e entities.Enrollment) enrollmentItem {
	it := enrollmentItem{
		UserID:             e.UserID,
		CourseID:           e.CourseID,
		Active:             e.Active,
		PlanType:           e.PlanType,
		EnrolledAt:         e.EnrolledAt.UTC().Format(time.RFC3339Nano),
		ProgressPercentage: e.ProgressPercentage,
	}
	if e.ExpiresAt != nil {
		it.ExpiresAt = e.ExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromEnrollmentItem(it enrollmentItem) entities.Enrollment {
	enrolledAt, _ := time.Parse(time.RFC3339Nano, it.EnrolledAt)
	e := entities.Enrollment{
		UserID:             it.UserID,
		CourseID:           it.CourseID,
		Active:             it.Active,
		PlanType:           it.PlanType,
		EnrolledAt:         enrolledAt,
		ProgressPercentage: it.ProgressPercentage,
	}
	if it.ExpiresAt != "" {
		if exp, err := time.Parse(time.RFC3339Nano, it.ExpiresAt); err == nil {
			e.ExpiresAt = &exp
		}
	}
	return e
}
