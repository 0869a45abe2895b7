package assignment

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"citycare/internal/common"
	"citycare/internal/complaint"
	"citycare/internal/resource"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service coordinates resource assignments. Every mutation runs as one
// transaction covering the assignment rows, the availability flip and the
// single history entry, so a storage failure rolls all of them back.
type Service struct {
	db       *gorm.DB
	recorder *complaint.Recorder
	log      *logrus.Logger
}

// NewService creates a new assignment coordinator
func NewService(db *gorm.DB, recorder *complaint.Recorder, log *logrus.Logger) *Service {
	return &Service{db: db, recorder: recorder, log: log}
}

// Assign attaches the requested resources to a complaint. Each resource id
// is an independent attempt: ineligible ones are skipped with a reason while
// the rest proceed. At most one history row is written, naming everything
// newly assigned.
func (s *Service) Assign(complaintID string, req *AssignRequest, actor string) (*AssignResponse, error) {
	var response *AssignResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comp complaint.Complaint
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", complaintID).
			First(&comp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("complaint %s: %w", complaintID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to load complaint: %w", err)
		}

		assigned := []AssignedResource{}
		skipped := []SkippedResource{}

		for _, resourceID := range canonicalIDs(req.ResourceIDs) {
			res, reason, err := s.tryAssign(tx, &comp, resourceID, req, actor)
			if err != nil {
				return err
			}
			if reason != "" {
				skipped = append(skipped, SkippedResource{ID: resourceID, Reason: reason})
				continue
			}
			assigned = append(assigned, AssignedResource{ID: res.ID, Name: res.Name, Type: res.Type})
		}

		if len(assigned) > 0 {
			// First assignment also moves an Open complaint forward; the
			// status change and the assignment summary share one history row.
			historyStatus := comp.Status
			if comp.Status == complaint.StatusOpen {
				if err := tx.Model(&comp).Update("status", complaint.StatusInProgress).Error; err != nil {
					return fmt.Errorf("failed to update complaint status: %w", err)
				}
				historyStatus = complaint.StatusInProgress
			}

			if err := s.recorder.Append(tx, complaintID, historyStatus, summaryNote(assigned), actor); err != nil {
				return err
			}
		}

		response = &AssignResponse{
			Assigned: assigned,
			Skipped:  skipped,
			Message:  fmt.Sprintf("Successfully assigned %d resources", len(assigned)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"complaint_id": complaintID,
		"assigned":     len(response.Assigned),
		"skipped":      len(response.Skipped),
		"actor":        actor,
	}).Info("resources assigned")

	return response, nil
}

// tryAssign evaluates one resource inside the batch transaction. A non-empty
// reason means the resource was skipped; an error aborts the whole batch.
func (s *Service) tryAssign(tx *gorm.DB, comp *complaint.Complaint, resourceID uuid.UUID, req *AssignRequest, actor string) (*resource.Resource, string, error) {
	// Serialize concurrent assigns of the same resource. The advisory lock
	// needs a bigint, so the uuid goes through a stable 64-bit hash.
	if err := tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtextextended(?::text, 0))",
		resourceID.String(),
	).Error; err != nil {
		return nil, "", fmt.Errorf("failed to acquire resource lock: %w", err)
	}

	var res resource.Resource
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", resourceID).
		First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, SkipNotFound, nil
		}
		return nil, "", fmt.Errorf("failed to load resource: %w", err)
	}

	if !res.Assignable() {
		return nil, SkipNotAssignable, nil
	}

	var existing int64
	if err := tx.Model(&resource.ResourceAssignment{}).
		Where("complaint_id = ? AND resource_id = ? AND status IN ?",
			comp.ID, resourceID, resource.ActiveAssignmentStatuses).
		Count(&existing).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if existing > 0 {
		return nil, SkipAlreadyAssigned, nil
	}

	a := resource.ResourceAssignment{
		ComplaintID:    comp.ID,
		ResourceID:     resourceID,
		AssignedBy:     actor,
		Status:         resource.AssignmentStatusAssigned,
		Notes:          req.Notes,
		EstimatedHours: req.EstimatedHours,
	}
	if err := tx.Create(&a).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create assignment: %w", common.ErrConstraintViolation)
	}

	if err := resource.Recompute(tx, resourceID); err != nil {
		return nil, "", err
	}

	return &res, "", nil
}

// AssignOne attaches a single resource. Unlike the batch, ineligibility is a
// hard typed failure here.
func (s *Service) AssignOne(complaintID string, resourceID uuid.UUID, notes string, estimatedHours *float64, actor string) (*AssignResponse, error) {
	req := &AssignRequest{
		ResourceIDs:    []uuid.UUID{resourceID},
		Notes:          notes,
		EstimatedHours: estimatedHours,
	}

	response, err := s.Assign(complaintID, req, actor)
	if err != nil {
		return nil, err
	}

	if len(response.Skipped) > 0 {
		switch response.Skipped[0].Reason {
		case SkipNotFound:
			return nil, fmt.Errorf("resource %s: %w", resourceID, common.ErrNotFound)
		case SkipAlreadyAssigned:
			return nil, fmt.Errorf("resource %s: %w", resourceID, common.ErrAlreadyAssigned)
		default:
			return nil, fmt.Errorf("resource %s: %w", resourceID, common.ErrConstraintViolation)
		}
	}
	return response, nil
}

// Unassign cancels the unique active assignment for the pair, restores the
// resource's availability from its remaining active set and writes one
// history entry.
func (s *Service) Unassign(complaintID string, resourceID uuid.UUID, actor string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtextextended(?::text, 0))",
			resourceID.String(),
		).Error; err != nil {
			return fmt.Errorf("failed to acquire resource lock: %w", err)
		}

		var comp complaint.Complaint
		if err := tx.Where("id = ?", complaintID).First(&comp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("complaint %s: %w", complaintID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to load complaint: %w", err)
		}

		var a resource.ResourceAssignment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("complaint_id = ? AND resource_id = ? AND status IN ?",
				complaintID, resourceID, resource.ActiveAssignmentStatuses).
			First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("active assignment for complaint %s and resource %s: %w",
					complaintID, resourceID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to load assignment: %w", err)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":   resource.AssignmentStatusCancelled,
			"end_time": now,
		}
		if err := tx.Model(&a).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel assignment: %w", err)
		}

		if err := resource.Recompute(tx, resourceID); err != nil {
			return err
		}

		var res resource.Resource
		if err := tx.Where("id = ?", resourceID).First(&res).Error; err != nil {
			return fmt.Errorf("failed to load resource: %w", err)
		}

		return s.recorder.Append(tx, complaintID, comp.Status, removalNote(res.Name), actor)
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"complaint_id": complaintID,
		"resource_id":  resourceID,
		"actor":        actor,
	}).Info("resource unassigned")

	return nil
}

// summaryNote is the single history line naming everything a batch assigned.
func summaryNote(assigned []AssignedResource) string {
	names := make([]string, 0, len(assigned))
	for _, a := range assigned {
		names = append(names, a.Name)
	}
	return "Resources assigned: " + strings.Join(names, ", ")
}

// removalNote is the history line written when an assignment is cancelled.
func removalNote(resourceName string) string {
	return "Resource removed: " + resourceName
}

// canonicalIDs drops repeated resource ids and sorts the rest. Every batch
// then takes the per-resource advisory locks in the same order, so two
// concurrent batches naming the same resources cannot deadlock each other.
func canonicalIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

// List returns all assignments for a complaint, oldest first.
func (s *Service) List(complaintID string) (*ListAssignmentsResponse, error) {
	var comp complaint.Complaint
	if err := s.db.Where("id = ?", complaintID).First(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("complaint %s: %w", complaintID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}

	var assignments []resource.ResourceAssignment
	if err := s.db.Preload("Resource").
		Where("complaint_id = ?", complaintID).
		Order("assigned_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	infos := make([]AssignmentInfo, 0, len(assignments))
	for _, a := range assignments {
		infos = append(infos, AssignmentInfo{
			ID:             a.ID,
			ResourceID:     a.ResourceID,
			ResourceName:   a.Resource.Name,
			ResourceType:   a.Resource.Type,
			Status:         a.Status,
			AssignedBy:     a.AssignedBy,
			AssignedAt:     a.AssignedAt,
			StartTime:      a.StartTime,
			EndTime:        a.EndTime,
			Notes:          a.Notes,
			EstimatedHours: a.EstimatedHours,
			ActualHours:    a.ActualHours,
		})
	}

	return &ListAssignmentsResponse{
		Complaint: ComplaintSummary{
			ID:          comp.ID,
			Title:       comp.Title,
			ServiceType: comp.ServiceType,
			Status:      comp.Status,
		},
		Assignments: infos,
	}, nil
}
