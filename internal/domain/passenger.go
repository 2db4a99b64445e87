package domain

import "github.com/google/uuid"

type Passenger struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	NationalID string    `json:"nationalId,omitempty"`
}
