package candidate

import (
	"errors"
	"time"
)

// Pipeline statuses a candidate moves through.
const (
	StatusApplied   = "applied"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusHired     = "hired"
	StatusRejected  = "rejected"
)

type Candidate struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	YearsExperience int       `json:"yearsExperience"`
	Skills          []string  `json:"skills"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// with pointers if optional, it will be nil
type ListFilter struct {
	Query    *string
	Status   *string
	Skill    *string
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

var (
	ErrNotFound       = errors.New("candidate not found")
	ErrDuplicateEmail = errors.New("candidate email already in use")
	ErrAlreadyHired   = errors.New("candidate already hired")
)

type CreateCandidateRequest struct {
	FullName        string   `json:"fullName" binding:"required,min=2,max=120"`
	Email           string   `json:"email" binding:"required,email,max=254"`
	Phone           string   `json:"phone" binding:"omitempty,min=7,max=20"`
	YearsExperience int      `json:"yearsExperience" binding:"omitempty,min=0,max=60"`
	Skills          []string `json:"skills" binding:"omitempty,max=30,dive,min=1,max=60"`
	Notes           string   `json:"notes" binding:"omitempty,max=2000"`
}

// a full update payload, might switch to a patch which optionally provides means for partial updates.
type UpdateCandidateRequest struct {
	FullName        string   `json:"fullName" binding:"required,min=2,max=120"`
	Email           string   `json:"email" binding:"required,email,max=254"`
	Phone           string   `json:"phone" binding:"omitempty,min=7,max=20"`
	YearsExperience int      `json:"yearsExperience" binding:"omitempty,min=0,max=60"`
	Skills          []string `json:"skills" binding:"omitempty,max=30,dive,min=1,max=60"`
	Status          string   `json:"status" binding:"required,oneof=applied screening interview offer hired rejected"`
	Notes           string   `json:"notes" binding:"omitempty,max=2000"`
}

// Stats is the aggregate served by GET /candidates/stats.
type Stats struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	TopSkills []SkillCount   `json:"topSkills"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
