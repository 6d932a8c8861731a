package employee

import (
	"errors"
	"time"
)

type Employee struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Skills     []string  `json:"skills"`
	HiredAt    time.Time `json:"hiredAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ListFilter struct {
	Query      *string
	Department *string
	Skill      *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("employee email already in use")
)

type CreateEmployeeRequest struct {
	FullName   string    `json:"fullName" binding:"required,min=2,max=120"`
	Email      string    `json:"email" binding:"required,email,max=254"`
	Phone      string    `json:"phone" binding:"omitempty,min=7,max=20"`
	Department string    `json:"department" binding:"required,min=2,max=80"`
	Position   string    `json:"position" binding:"required,min=2,max=80"`
	Skills     []string  `json:"skills" binding:"omitempty,max=30,dive,min=1,max=60"`
	HiredAt    time.Time `json:"hiredAt" binding:"omitempty"`
}

type UpdateEmployeeRequest struct {
	FullName   string    `json:"fullName" binding:"required,min=2,max=120"`
	Email      string    `json:"email" binding:"required,email,max=254"`
	Phone      string    `json:"phone" binding:"omitempty,min=7,max=20"`
	Department string    `json:"department" binding:"required,min=2,max=80"`
	Position   string    `json:"position" binding:"required,min=2,max=80"`
	Skills     []string  `json:"skills" binding:"omitempty,max=30,dive,min=1,max=60"`
	HiredAt    time.Time `json:"hiredAt" binding:"omitempty"`
}

// HireRequest is the body of POST /candidates/:id/hire. Identity fields come
// from the candidate record, not from the request.
type HireRequest struct {
	Department string `json:"department" binding:"required,min=2,max=80"`
	Position   string `json:"position" binding:"required,min=2,max=80"`
}
