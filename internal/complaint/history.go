package complaint

import (
	"fmt"

	"gorm.io/gorm"
)

// Recorder appends and reads the per-complaint audit trail. It is the only
// code that touches complaint_status_history; there is deliberately no
// update or delete path.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a new history recorder
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Append inserts one audit entry inside the caller's transaction.
func (r *Recorder) Append(tx *gorm.DB, complaintID, status, note, actor string) error {
	entry := ComplaintStatusHistory{
		ComplaintID: complaintID,
		Status:      status,
		Note:        note,
		UpdatedBy:   actor,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// ListDesc returns the complaint's history newest first, for display.
func (r *Recorder) ListDesc(complaintID string) ([]ComplaintStatusHistory, error) {
	var entries []ComplaintStatusHistory
	if err := r.db.Where("complaint_id = ?", complaintID).Order("seq DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// ListAsc returns the complaint's history in insertion order.
func (r *Recorder) ListAsc(complaintID string) ([]ComplaintStatusHistory, error) {
	var entries []ComplaintStatusHistory
	if err := r.db.Where("complaint_id = ?", complaintID).Order("seq ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}
