package resource

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeriveAvailability computes the availability a resource should report
// given its current status and the number of active assignments it holds.
// Maintenance is sticky: only an explicit admin update leaves it.
func DeriveAvailability(current string, activeCount int64) string {
	if current == AvailabilityMaintenance {
		return AvailabilityMaintenance
	}
	if activeCount > 0 {
		return AvailabilityBusy
	}
	return AvailabilityAvailable
}

// Recompute re-derives a resource's availability from its full active
// assignment set and persists it when changed. Every assignment mutation
// goes through here, inside the caller's transaction.
func Recompute(tx *gorm.DB, resourceID uuid.UUID) error {
	var res Resource
	if err := tx.Where("id = ?", resourceID).First(&res).Error; err != nil {
		return fmt.Errorf("failed to load resource for recompute: %w", err)
	}

	count, err := CountActiveAssignments(tx, resourceID)
	if err != nil {
		return err
	}

	derived := DeriveAvailability(res.AvailabilityStatus, count)
	if derived == res.AvailabilityStatus {
		return nil
	}

	if err := tx.Model(&Resource{}).Where("id = ?", resourceID).
		Update("availability_status", derived).Error; err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	return nil
}

// CountActiveAssignments counts the assignments occupying a resource.
func CountActiveAssignments(tx *gorm.DB, resourceID uuid.UUID) (int64, error) {
	var count int64
	if err := tx.Model(&ResourceAssignment{}).
		Where("resource_id = ? AND status IN ?", resourceID, ActiveAssignmentStatuses).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active assignments: %w", err)
	}
	return count, nil
}
