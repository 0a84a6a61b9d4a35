// model/car.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Car struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Make        string             `bson:"make" json:"make"`
	Model       string             `bson:"model" json:"model"`
	Year        int                `bson:"year" json:"year"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Features    []string           `bson:"features,omitempty" json:"features,omitempty"`
	PricePerDay float64            `bson:"pricePerDay" json:"pricePerDay"`
	Available   bool               `bson:"available" json:"available"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
