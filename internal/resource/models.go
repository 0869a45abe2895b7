package resource

import (
	"time"

	"citycare/internal/common"

	"github.com/google/uuid"
)

// Resource availability
const (
	AvailabilityAvailable   = "Available"
	AvailabilityBusy        = "Busy"
	AvailabilityMaintenance = "Maintenance"
)

// Resource lifecycle. Deactivated resources stay on record so assignment
// history keeps resolving, they just never receive new work.
const (
	LifecycleActive      = "active"
	LifecycleDeactivated = "deactivated"
)

// Assignment statuses. Assigned and In Progress count as active.
const (
	AssignmentStatusAssigned   = "Assigned"
	AssignmentStatusInProgress = "In Progress"
	AssignmentStatusCompleted  = "Completed"
	AssignmentStatusCancelled  = "Cancelled"
)

// ActiveAssignmentStatuses are the states that occupy a resource
var ActiveAssignmentStatuses = []string{AssignmentStatusAssigned, AssignmentStatusInProgress}

// Resource represents municipal personnel, equipment or a vehicle
type Resource struct {
	common.BaseModel
	Name               string  `json:"name" gorm:"not null;size:100"`
	Type               string  `json:"type" gorm:"not null;size:50;index"`
	ServiceCategory    string  `json:"service_category" gorm:"size:50;index"`
	Description        string  `json:"description" gorm:"type:text"`
	AvailabilityStatus string  `json:"availability_status" gorm:"not null;size:20;default:'Available';index"`
	LifecycleState     string  `json:"lifecycle_state" gorm:"not null;size:20;default:'active';index"`
	ContactPerson      string  `json:"contact_person,omitempty" gorm:"size:100"`
	ContactPhone       string  `json:"contact_phone,omitempty" gorm:"size:30"`
	ContactEmail       string  `json:"contact_email,omitempty" gorm:"size:100"`
	Location           string  `json:"location,omitempty" gorm:"size:255"`
	Capacity           int     `json:"capacity" gorm:"default:1"`
	HourlyRate         float64 `json:"hourly_rate" gorm:"type:decimal(10,2);default:0"`
}

// TableName specifies the table name for GORM
func (Resource) TableName() string {
	return "resources"
}

// Assignable reports whether the resource may receive new assignments.
func (r *Resource) Assignable() bool {
	return r.LifecycleState == LifecycleActive && r.AvailabilityStatus != AvailabilityMaintenance
}

// ResourceAssignment links a resource to a complaint. At most one active
// row may exist per (complaint, resource) pair.
type ResourceAssignment struct {
	common.BaseModel
	ComplaintID    string     `json:"complaint_id" gorm:"not null;size:20;index:idx_assignments_pair"`
	ResourceID     uuid.UUID  `json:"resource_id" gorm:"type:uuid;not null;index:idx_assignments_pair"`
	AssignedBy     string     `json:"assigned_by" gorm:"size:100"`
	AssignedAt     time.Time  `json:"assigned_at" gorm:"autoCreateTime"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Status         string     `json:"status" gorm:"not null;size:20;default:'Assigned';index"`
	Notes          string     `json:"notes,omitempty" gorm:"type:text"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty" gorm:"type:decimal(6,2)"`
	ActualHours    *float64   `json:"actual_hours,omitempty" gorm:"type:decimal(6,2)"`

	// Relations
	Resource Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
}

// TableName specifies the table name for GORM
func (ResourceAssignment) TableName() string {
	return "resource_assignments"
}

// Active reports whether the assignment currently occupies its resource.
func (a *ResourceAssignment) Active() bool {
	return a.Status == AssignmentStatusAssigned || a.Status == AssignmentStatusInProgress
}

// Request/Response Models

// CreateResourceRequest represents the request to register a resource
type CreateResourceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Type            string  `json:"type" binding:"required"`
	ServiceCategory string  `json:"service_category"`
	Description     string  `json:"description"`
	ContactPerson   string  `json:"contact_person"`
	ContactPhone    string  `json:"contact_phone"`
	ContactEmail    string  `json:"contact_email"`
	Location        string  `json:"location"`
	Capacity        int     `json:"capacity"`
	HourlyRate      float64 `json:"hourly_rate"`
}

// UpdateResourceRequest carries optional resource fields; nil means unchanged
type UpdateResourceRequest struct {
	Name               *string  `json:"name"`
	Type               *string  `json:"type"`
	ServiceCategory    *string  `json:"service_category"`
	Description        *string  `json:"description"`
	AvailabilityStatus *string  `json:"availability_status"`
	ContactPerson      *string  `json:"contact_person"`
	ContactPhone       *string  `json:"contact_phone"`
	ContactEmail       *string  `json:"contact_email"`
	Location           *string  `json:"location"`
	Capacity           *int     `json:"capacity"`
	HourlyRate         *float64 `json:"hourly_rate"`
}

// ListResourcesRequest carries the list filters
type ListResourcesRequest struct {
	common.Pagination
	Availability string `form:"availability_status"`
	Type         string `form:"type"`
	Service      string `form:"service"`
}

// ResourceInfo represents resource information for API responses
type ResourceInfo struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	ServiceCategory    string  `json:"service_category,omitempty"`
	Description        string  `json:"description,omitempty"`
	AvailabilityStatus string  `json:"availability_status"`
	IsActive           bool    `json:"is_active"`
	ContactPerson      string  `json:"contact_person,omitempty"`
	ContactPhone       string  `json:"contact_phone,omitempty"`
	ContactEmail       string  `json:"contact_email,omitempty"`
	Location           string  `json:"location,omitempty"`
	Capacity           int     `json:"capacity"`
	HourlyRate         float64 `json:"hourly_rate"`
	ActiveAssignments  int64   `json:"active_assignments"`
}

// ListResourcesResponse is the paginated resource listing
type ListResourcesResponse struct {
	Resources []ResourceInfo `json:"resources"`
	Total     int64          `json:"total"`
	Page      int            `json:"page"`
}
