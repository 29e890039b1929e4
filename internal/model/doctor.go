package model

import "time"

type Doctor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CRM         string    `json:"crm"` // medical license number
	SpecialtyID string    `json:"specialty_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Loaded on demand for listings
	SpecialtyName string `json:"specialty_name,omitempty"`
}
