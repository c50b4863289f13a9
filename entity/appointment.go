package entity

import (
	"time"
)

// Appointment is the immutable result of a completed scheduling flow.
type Appointment struct {
	UUID           string    `json:"uuid" bson:"uuid"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id" validate:"required"`
	Name           string    `json:"name" bson:"name" validate:"required,max=100"`
	PetName        string    `json:"pet_name" bson:"pet_name" validate:"required,max=100"`
	PetType        string    `json:"pet_type" bson:"pet_type" validate:"required,max=100"`
	Reason         string    `json:"reason" bson:"reason" validate:"required,max=100"`
	CompletedAt    time.Time `json:"completed_at" bson:"completed_at"`
}

// Row flattens the appointment into the column order of the bookings sheet.
func (a Appointment) Row() []interface{} {
	return []interface{}{
		a.ConversationID,
		a.Name,
		a.PetName,
		a.PetType,
		a.Reason,
		a.CompletedAt.Format(time.RFC3339),
	}
}
