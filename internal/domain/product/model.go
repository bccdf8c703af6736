package product

import (
	"github.com/samsarastore/samsara/internal/types"
)

type Product struct {
	// ID is the unique identifier for the product or variation
	ID string `db:"id" json:"id"`

	// ParentID is the parent product when this record is a variation;
	// empty for top-level products
	ParentID string `db:"parent_id" json:"parent_id"`

	// Name is the display name of the product
	Name string `db:"name" json:"name"`

	types.BaseModel
}

// IsVariation reports whether the product is a variation of a parent product
func (p *Product) IsVariation() bool {
	return p.ParentID != ""
}
