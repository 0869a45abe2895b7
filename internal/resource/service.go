package resource

import (
	"errors"
	"fmt"

	"citycare/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles resource management business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new resource service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers a new resource, starting Available and active
func (s *Service) Create(req *CreateResourceRequest) (*ResourceInfo, error) {
	res := Resource{
		Name:               req.Name,
		Type:               req.Type,
		ServiceCategory:    req.ServiceCategory,
		Description:        req.Description,
		AvailabilityStatus: AvailabilityAvailable,
		LifecycleState:     LifecycleActive,
		ContactPerson:      req.ContactPerson,
		ContactPhone:       req.ContactPhone,
		ContactEmail:       req.ContactEmail,
		Location:           req.Location,
		Capacity:           req.Capacity,
		HourlyRate:         req.HourlyRate,
	}
	if res.Capacity < 1 {
		res.Capacity = 1
	}

	if err := s.db.Create(&res).Error; err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	info := s.convertToResourceInfo(&res, 0)
	return &info, nil
}

// Get returns one resource with its active assignment count
func (s *Service) Get(resourceID uuid.UUID) (*ResourceInfo, error) {
	var res Resource
	if err := s.db.Where("id = ?", resourceID).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resource %s: %w", resourceID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load resource: %w", err)
	}

	count, err := CountActiveAssignments(s.db, res.ID)
	if err != nil {
		return nil, err
	}

	info := s.convertToResourceInfo(&res, count)
	return &info, nil
}

// List returns active resources matching the filters
func (s *Service) List(req *ListResourcesRequest) (*ListResourcesResponse, error) {
	req.Normalize()

	query := s.db.Model(&Resource{}).Where("lifecycle_state = ?", LifecycleActive)
	if req.Availability != "" && req.Availability != "all" {
		query = query.Where("availability_status = ?", req.Availability)
	}
	if req.Type != "" && req.Type != "all" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Service != "" && req.Service != "all" {
		query = query.Where("service_category = ?", req.Service)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count resources: %w", err)
	}

	var resources []Resource
	if err := query.Order("name").Offset(req.Offset()).Limit(req.PageSize).Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	infos := make([]ResourceInfo, 0, len(resources))
	for i := range resources {
		count, err := CountActiveAssignments(s.db, resources[i].ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, s.convertToResourceInfo(&resources[i], count))
	}

	return &ListResourcesResponse{Resources: infos, Total: total, Page: req.Page}, nil
}

// Update applies the non-nil fields of the patch
func (s *Service) Update(resourceID uuid.UUID, req *UpdateResourceRequest) (*ResourceInfo, error) {
	var res Resource
	if err := s.db.Where("id = ?", resourceID).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resource %s: %w", resourceID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load resource: %w", err)
	}

	updates, err := BuildUpdates(req)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(&res).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update resource: %w", err)
		}
	}

	return s.Get(resourceID)
}

// Deactivate soft-deletes a resource. Assignment history stays intact; the
// resource simply stops receiving new work.
func (s *Service) Deactivate(resourceID uuid.UUID) error {
	result := s.db.Model(&Resource{}).
		Where("id = ? AND lifecycle_state = ?", resourceID, LifecycleActive).
		Update("lifecycle_state", LifecycleDeactivated)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resource %s: %w", resourceID, common.ErrNotFound)
	}
	return nil
}

// BuildUpdates converts a patch into a column update map, validating the
// availability value when present.
func BuildUpdates(req *UpdateResourceRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ServiceCategory != nil {
		updates["service_category"] = *req.ServiceCategory
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AvailabilityStatus != nil {
		switch *req.AvailabilityStatus {
		case AvailabilityAvailable, AvailabilityBusy, AvailabilityMaintenance:
			updates["availability_status"] = *req.AvailabilityStatus
		default:
			return nil, fmt.Errorf("unknown availability %q: %w", *req.AvailabilityStatus, common.ErrConstraintViolation)
		}
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = *req.ContactPerson
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Capacity != nil && *req.Capacity > 0 {
		updates["capacity"] = *req.Capacity
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	return updates, nil
}

func (s *Service) convertToResourceInfo(res *Resource, activeCount int64) ResourceInfo {
	return ResourceInfo{
		ID:                 res.ID.String(),
		Name:               res.Name,
		Type:               res.Type,
		ServiceCategory:    res.ServiceCategory,
		Description:        res.Description,
		AvailabilityStatus: res.AvailabilityStatus,
		IsActive:           res.LifecycleState == LifecycleActive,
		ContactPerson:      res.ContactPerson,
		ContactPhone:       res.ContactPhone,
		ContactEmail:       res.ContactEmail,
		Location:           res.Location,
		Capacity:           res.Capacity,
		HourlyRate:         res.HourlyRate,
		ActiveAssignments:  activeCount,
	}
}
