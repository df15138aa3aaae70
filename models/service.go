package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AppointmentService is a bookable treatment with its full daily slot list.
type AppointmentService struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ServiceTitle string             `bson:"serviceTitle" json:"serviceTitle"` // unique within the catalog
	Slots        []string           `bson:"slots" json:"slots"`               // ordered slot labels, e.g. "08.00 AM - 08.30 AM"
	Price        float64            `bson:"price" json:"price"`
}

// Specialty is the title-only projection of a service.
type Specialty struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ServiceTitle string             `bson:"serviceTitle" json:"serviceTitle"`
}
