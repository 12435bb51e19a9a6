package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is read-only here; this service only needs the buyer's name and
// e-mail address for the order confirmation mail.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}
