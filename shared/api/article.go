package api

import (
	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateArticleRequest struct {
	Name              string           `json:"name" validate:"required"`
	Description       string           `json:"description" validate:"required"`
	Price             *decimal.Decimal `json:"price" validate:"required"`
	AvailableQuantity *int64           `json:"availableQuantity" validate:"required,gte=0"`
}

type UpdateArticleRequest struct {
	Name              *string          `json:"name,omitempty" validate:"omitnil,min=1"`
	Description       *string          `json:"description,omitempty" validate:"omitnil,min=1"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	AvailableQuantity *int64           `json:"availableQuantity,omitempty" validate:"omitnil,gte=0"`
}

// Response DTOs

// ArticleResponse carries the stored article plus its rendered description.
type ArticleResponse struct {
	domain.Article
	DescriptionHTML string `json:"descriptionHtml"`
}

type DeleteManyResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deletedCount"`
}
