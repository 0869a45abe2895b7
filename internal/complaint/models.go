package complaint

import (
	"strings"
	"time"

	"citycare/internal/auth"
	"citycare/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint statuses
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusCancelled  = "Cancelled"
)

// Complaint priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Note written into the first history row of every complaint
const SubmissionNote = "Complaint submitted by citizen"

// Complaint represents a citizen-filed service complaint
type Complaint struct {
	ID          string `json:"id" gorm:"primaryKey;size:20"`
	Title       string `json:"title" gorm:"not null;size:255"`
	Description string `json:"description" gorm:"type:text;not null"`
	ServiceType string `json:"service_type" gorm:"not null;size:50;index"`
	Status      string `json:"status" gorm:"not null;size:20;default:'Open';index"`
	Priority    string `json:"priority" gorm:"not null;size:10;default:'Medium';index"`

	Location common.Location `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	ReporterID          uuid.UUID  `json:"reporter_id" gorm:"type:uuid;not null;index"`
	AssignedTo          string     `json:"assigned_to,omitempty" gorm:"size:100"`
	EstimatedResolution *time.Time `json:"estimated_resolution,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Reporter *auth.User               `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	History  []ComplaintStatusHistory `json:"history,omitempty" gorm:"foreignKey:ComplaintID"`
	Images   []ComplaintImage         `json:"images,omitempty" gorm:"foreignKey:ComplaintID"`
}

// TableName specifies the table name for GORM
func (Complaint) TableName() string {
	return "complaints"
}

// BeforeCreate assigns the public complaint id
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewComplaintID()
	}
	return nil
}

// NewComplaintID returns a public complaint id of the form CC-XXXXXXXX
func NewComplaintID() string {
	return "CC-" + strings.ToUpper(uuid.New().String()[:8])
}

// ComplaintStatusHistory is one immutable audit entry for a complaint.
// Rows are only ever inserted; Seq gives the per-complaint total order even
// when two writers commit within the same timestamp tick.
type ComplaintStatusHistory struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Seq         int64     `json:"seq" gorm:"autoIncrement;uniqueIndex"`
	ComplaintID string    `json:"complaint_id" gorm:"not null;size:20;index"`
	Status      string    `json:"status" gorm:"not null;size:20"`
	Note        string    `json:"note" gorm:"type:text"`
	UpdatedBy   string    `json:"updated_by" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ComplaintStatusHistory) TableName() string {
	return "complaint_status_history"
}

// ComplaintImage stores an opaque attachment URL for a complaint
type ComplaintImage struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ComplaintID string    `json:"complaint_id" gorm:"not null;size:20;index"`
	ImageURL    string    `json:"image_url" gorm:"not null;size:512"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ComplaintImage) TableName() string {
	return "complaint_images"
}

// ServiceCategory is one entry of the municipal services catalog
type ServiceCategory struct {
	ID          string            `json:"id" gorm:"primaryKey;size:30"`
	Name        string            `json:"name" gorm:"not null;size:100"`
	Description string            `json:"description" gorm:"size:255"`
	Icon        string            `json:"icon" gorm:"size:50"`
	Examples    common.StringList `json:"examples" gorm:"type:jsonb;default:'[]'::jsonb"`
}

// TableName specifies the table name for GORM
func (ServiceCategory) TableName() string {
	return "services"
}

// Request/Response Models

// CreateComplaintRequest represents a citizen complaint submission
type CreateComplaintRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description" binding:"required"`
	ServiceType string           `json:"service_type" binding:"required"`
	Location    *common.Location `json:"location"`
	Priority    string           `json:"priority"`
	ImageURLs   []string         `json:"image_urls"`
}

// AdminCreateComplaintRequest files a complaint on behalf of a citizen
type AdminCreateComplaintRequest struct {
	CreateComplaintRequest
	UserEmail string `json:"user_email" binding:"required,email"`
}

// TransitionRequest represents an explicit status change
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// ListComplaintsRequest carries the list filters
type ListComplaintsRequest struct {
	common.Pagination
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Service  string `form:"service"`
	Search   string `form:"search"`
}

// ComplaintInfo represents complaint information for API responses
type ComplaintInfo struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ServiceType string          `json:"service_type"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Location    common.Location `json:"location"`
	ReporterID  string          `json:"reporter_id"`
	Reporter    string          `json:"reporter,omitempty"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
	ImageURLs   []string        `json:"image_urls,omitempty"`
	History     []HistoryInfo   `json:"history,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// HistoryInfo represents one audit entry for API responses
type HistoryInfo struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ListComplaintsResponse is the paginated complaint listing
type ListComplaintsResponse struct {
	Complaints []ComplaintInfo `json:"complaints"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
}

// ListServicesResponse is the services catalog listing
type ListServicesResponse struct {
	Services []ServiceCategory `json:"services"`
}
