package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Article struct {
	Id                ArticleId       `json:"id"`
	Name              ArticleName     `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int64           `json:"availableQuantity"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type ArticleCreationData struct {
	Name              ArticleName
	Description       string
	Price             decimal.Decimal
	AvailableQuantity int64
}

// ArticlePatch holds a merge-style update; nil fields are left untouched.
type ArticlePatch struct {
	Name              *ArticleName
	Description       *string
	Price             *decimal.Decimal
	AvailableQuantity *int64
}

func (p ArticlePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.AvailableQuantity == nil
}
