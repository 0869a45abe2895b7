package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Skip reasons reported per resource id by the batch Assign
const (
	SkipNotFound        = "resource not found"
	SkipNotAssignable   = "resource not available for assignment"
	SkipAlreadyAssigned = "resource already assigned to this complaint"
)

// AssignRequest represents the request to assign resources to a complaint
type AssignRequest struct {
	ResourceIDs    []uuid.UUID `json:"resource_ids" binding:"required,min=1"`
	Notes          string      `json:"notes"`
	EstimatedHours *float64    `json:"estimated_hours"`
}

// AssignedResource identifies one successfully assigned resource
type AssignedResource struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// SkippedResource reports one resource id the batch could not assign
type SkippedResource struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// AssignResponse represents the batch assignment outcome
type AssignResponse struct {
	Assigned []AssignedResource `json:"assigned_resources"`
	Skipped  []SkippedResource  `json:"skipped_resources,omitempty"`
	Message  string             `json:"message"`
}

// AssignmentInfo represents one assignment for API responses
type AssignmentInfo struct {
	ID             uuid.UUID  `json:"id"`
	ResourceID     uuid.UUID  `json:"resource_id"`
	ResourceName   string     `json:"resource_name"`
	ResourceType   string     `json:"resource_type"`
	Status         string     `json:"status"`
	AssignedBy     string     `json:"assigned_by"`
	AssignedAt     time.Time  `json:"assigned_at"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
}

// ComplaintSummary labels the complaint a listing belongs to
type ComplaintSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ServiceType string `json:"service_type"`
	Status      string `json:"status"`
}

// ListAssignmentsResponse lists a complaint's assignments, oldest first
type ListAssignmentsResponse struct {
	Complaint   ComplaintSummary `json:"complaint"`
	Assignments []AssignmentInfo `json:"assignments"`
}
