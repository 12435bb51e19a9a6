package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is the inline binary payload of a product image. The data is
// excluded from every list-shaped response and only served raw through
// the photo endpoint.
type Photo struct {
	Data        []byte `bson:"data,omitempty" json:"-"`
	ContentType string `bson:"contentType,omitempty" json:"contentType,omitempty"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	CategoryID  primitive.ObjectID `bson:"category" json:"category"`
	Photo       Photo              `bson:"photo,omitempty" json:"-"`
	Shipping    *bool              `bson:"shipping,omitempty" json:"shipping,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Category is populated by the catalog service; it is never stored.
	Category *Category `bson:"-" json:"categoryDetail,omitempty"`
}
