package database

import (
	"citycare/internal/ai"
	"citycare/internal/auth"
	"citycare/internal/complaint"
	"citycare/internal/resource"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	// gen_random_uuid lives in pgcrypto on PostgreSQL < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}

	// Auto-migrate all models
	err := db.AutoMigrate(
		&auth.User{},
		// Complaint models
		&complaint.Complaint{},
		&complaint.ComplaintStatusHistory{},
		&complaint.ComplaintImage{},
		&complaint.ServiceCategory{},
		// Resource models
		&resource.Resource{},
		&resource.ResourceAssignment{},
		// Assistant config
		&ai.BotConfig{},
	)

	if err != nil {
		return err
	}

	if err := createComplaintIndexes(db); err != nil {
		return err
	}

	if err := createResourceIndexes(db); err != nil {
		return err
	}

	return nil
}

func createComplaintIndexes(db *gorm.DB) error {
	// Index for the citizen's own-complaints listing
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_complaints_reporter_created
		ON complaints (reporter_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Combined index for the admin list filters
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_complaints_status_priority
		ON complaints (status, priority, service_type)
	`).Error; err != nil {
		return err
	}

	// Index for reading a complaint's audit trail in order
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_history_complaint_seq
		ON complaint_status_history (complaint_id, seq)
	`).Error; err != nil {
		return err
	}

	// Index for loading a complaint's attachments
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_complaint_images_complaint
		ON complaint_images (complaint_id)
	`).Error; err != nil {
		return err
	}

	return nil
}

func createResourceIndexes(db *gorm.DB) error {
	// Index for the resource listing filters
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_resources_lifecycle_availability
		ON resources (lifecycle_state, availability_status)
	`).Error; err != nil {
		return err
	}

	// Index for counting a resource's active assignments
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_assignments_resource_status
		ON resource_assignments (resource_id, status)
	`).Error; err != nil {
		return err
	}

	// Index for listing a complaint's assignments by time
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_assignments_complaint_assigned_at
		ON resource_assignments (complaint_id, assigned_at)
	`).Error; err != nil {
		return err
	}

	return nil
}
