package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	FullName    string     `json:"full_name" validate:"required,max=255"`
	Species     string     `json:"species,omitempty" validate:"omitempty,max=50"`
	Breed       string     `json:"breed,omitempty" validate:"omitempty,max=100"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type UpdatePatientRequest struct {
	FullName    string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Species     string `json:"species,omitempty" validate:"omitempty,max=50"`
	Breed       string `json:"breed,omitempty" validate:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Notes       string `json:"notes,omitempty"`
}

type PatientResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	FullName    string     `json:"full_name"`
	Species     string     `json:"species,omitempty"`
	Breed       string     `json:"breed,omitempty"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
