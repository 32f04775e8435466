package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserDoc struct {
	ID           primitive.ObjectID `json:"uid" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	CreatedAt    string             `json:"createdAt" bson:"createdAt"`
}
