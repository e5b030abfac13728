// internal/domain/models/merchandise.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderImage is stored when a product is saved without any images.
const PlaceholderImage = "/static/img/merch-placeholder.png"

// Merchandise is a product in the club store. Sizes and Colors are the
// variant axes; when either is non-empty a buyer must pick a value before
// the line can be checked out.
type Merchandise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"name_ci" json:"-"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Images        []string           `bson:"images" json:"images"`
	CoverImage    string             `bson:"cover_image" json:"coverImage"`
	Category      string             `bson:"category" json:"category"`
	Sizes         []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors        []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	InStock       bool               `bson:"in_stock" json:"inStock"`
	StockQuantity *int               `bson:"stock_quantity,omitempty" json:"stockQuantity,omitempty"`
	Featured      bool               `bson:"featured" json:"featured"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// HasSizes reports whether the product requires a size selection.
func (m Merchandise) HasSizes() bool { return len(m.Sizes) > 0 }

// HasColors reports whether the product requires a color selection.
func (m Merchandise) HasColors() bool { return len(m.Colors) > 0 }

// OffersSize reports whether size is one of the declared sizes.
func (m Merchandise) OffersSize(size string) bool { return contains(m.Sizes, size) }

// OffersColor reports whether color is one of the declared colors.
func (m Merchandise) OffersColor(color string) bool { return contains(m.Colors, color) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
