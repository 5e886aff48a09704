package interfaces

import (
	"context"

	"aulaplus/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Create must enforce uniqueness of the external payment id at the store
// level (conditional insert) and return entities.ErrPaymentAlreadyRecorded
// when a record with the same id already exists, so that concurrent
// redeliveries cannot double-record a payment.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error)
}
