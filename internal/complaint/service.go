package complaint

import (
	"errors"
	"fmt"
	"strings"

	"citycare/internal/auth"
	"citycare/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriorityClassifier rates a submission; implementations must never fail,
// falling back to a default priority instead.
type PriorityClassifier interface {
	ClassifyPriority(title, description, serviceType string) string
}

// Service handles complaint lifecycle business logic
type Service struct {
	db         *gorm.DB
	recorder   *Recorder
	classifier PriorityClassifier
}

// NewService creates a new complaint service
func NewService(db *gorm.DB, classifier PriorityClassifier) *Service {
	return &Service{
		db:         db,
		recorder:   NewRecorder(db),
		classifier: classifier,
	}
}

// Recorder exposes the history recorder for coordinated writers.
func (s *Service) Recorder() *Recorder {
	return s.recorder
}

// Create files a new complaint for the given reporter. The complaint starts
// Open and its first history row is written in the same transaction.
func (s *Service) Create(reporter *auth.User, req *CreateComplaintRequest, actor string) (*ComplaintInfo, error) {
	priority := req.Priority
	if !ValidPriority(priority) {
		priority = s.classifier.ClassifyPriority(req.Title, req.Description, req.ServiceType)
	}

	c := Complaint{
		Title:       req.Title,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Status:      StatusOpen,
		Priority:    priority,
		ReporterID:  reporter.ID,
	}
	if req.Location != nil {
		c.Location = *req.Location
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to create complaint: %w", err)
		}

		if err := s.recorder.Append(tx, c.ID, StatusOpen, SubmissionNote, actor); err != nil {
			return err
		}

		for _, url := range req.ImageURLs {
			img := ComplaintImage{ComplaintID: c.ID, ImageURL: url}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("failed to store complaint image: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(c.ID, nil)
}

// Transition applies an explicit status change. The status update and its
// single history row commit together or not at all.
func (s *Service) Transition(complaintID, newStatus, note, actor string) (*ComplaintInfo, error) {
	if !ValidStatus(newStatus) {
		return nil, fmt.Errorf("unknown status %q: %w", newStatus, common.ErrInvalidTransition)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var c Complaint
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", complaintID).
			First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("complaint %s: %w", complaintID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to load complaint: %w", err)
		}

		if !CanTransition(c.Status, newStatus) {
			return fmt.Errorf("cannot move %s from %s to %s: %w", complaintID, c.Status, newStatus, common.ErrInvalidTransition)
		}
		if RequiresNote(c.Status, newStatus) && strings.TrimSpace(note) == "" {
			return fmt.Errorf("resolving an in-progress complaint requires a note: %w", common.ErrInvalidTransition)
		}

		if err := tx.Model(&c).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		historyNote := note
		if historyNote == "" {
			historyNote = fmt.Sprintf("Status changed to %s", newStatus)
		}
		return s.recorder.Append(tx, complaintID, newStatus, historyNote, actor)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(complaintID, nil)
}

// Get returns one complaint with reporter, images and history (newest first).
// When requesterID is non-nil the lookup is scoped to that reporter.
func (s *Service) Get(complaintID string, requesterID *uuid.UUID) (*ComplaintInfo, error) {
	query := s.db.Preload("Reporter").Preload("Images").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq DESC") }).
		Where("id = ?", complaintID)
	if requesterID != nil {
		query = query.Where("reporter_id = ?", *requesterID)
	}

	var c Complaint
	if err := query.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("complaint %s: %w", complaintID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}

	info := s.convertToComplaintInfo(&c)
	return &info, nil
}

// List returns complaints matching the filters, newest first. When
// reporterID is non-nil only that reporter's complaints are returned.
func (s *Service) List(req *ListComplaintsRequest, reporterID *uuid.UUID) (*ListComplaintsResponse, error) {
	req.Normalize()

	query := s.db.Model(&Complaint{})
	if reporterID != nil {
		query = query.Where("reporter_id = ?", *reporterID)
	}
	if req.Status != "" && req.Status != "all" {
		query = query.Where("status = ?", NormalizeStatusFilter(req.Status))
	}
	if req.Priority != "" && req.Priority != "all" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.Service != "" && req.Service != "all" {
		query = query.Where("service_type = ?", req.Service)
	}
	if req.Search != "" {
		query = query.Where("title ILIKE ?", "%"+req.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}

	var complaints []Complaint
	if err := query.Preload("Reporter").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq DESC") }).
		Order("created_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	infos := make([]ComplaintInfo, 0, len(complaints))
	for i := range complaints {
		infos = append(infos, s.convertToComplaintInfo(&complaints[i]))
	}

	return &ListComplaintsResponse{Complaints: infos, Total: total, Page: req.Page}, nil
}

// ListServices returns the municipal services catalog.
func (s *Service) ListServices() (*ListServicesResponse, error) {
	var services []ServiceCategory
	if err := s.db.Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return &ListServicesResponse{Services: services}, nil
}

// NormalizeStatusFilter maps url-style filters like "in-progress" onto the
// stored status values.
func NormalizeStatusFilter(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func (s *Service) convertToComplaintInfo(c *Complaint) ComplaintInfo {
	info := ComplaintInfo{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ServiceType: c.ServiceType,
		Status:      c.Status,
		Priority:    c.Priority,
		Location:    c.Location,
		ReporterID:  c.ReporterID.String(),
		AssignedTo:  c.AssignedTo,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Reporter != nil {
		info.Reporter = c.Reporter.FullName()
	}
	for _, img := range c.Images {
		info.ImageURLs = append(info.ImageURLs, img.ImageURL)
	}
	for _, h := range c.History {
		info.History = append(info.History, HistoryInfo{
			Status:    h.Status,
			Note:      h.Note,
			UpdatedBy: h.UpdatedBy,
			CreatedAt: h.CreatedAt,
		})
	}
	return info
}
