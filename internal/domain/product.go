package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategory groups store products for browsing.
type ProductCategory string

const (
	CategoryNew       ProductCategory = "NEW"
	CategoryPopular   ProductCategory = "POPULAR"
	CategoryFood      ProductCategory = "FOOD"
	CategoryEquipment ProductCategory = "EQUIPMENT"
)

// Product is an item in the small built-in store. Price is in minor
// currency units.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       int                `bson:"price" json:"price"`
	Category    ProductCategory    `bson:"category" json:"category"`
	Link        string             `bson:"link" json:"link"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
