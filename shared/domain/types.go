package domain

import "github.com/google/uuid"

type (
	Email    = string
	Password = string

	UserId     = uuid.UUID
	ArticleId  = uuid.UUID
	CustomerId = uuid.UUID
	OrderId    = uuid.UUID

	ArticleName    = string
	DeliveryStatus = string
)
