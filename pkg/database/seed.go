package database

import (
	"citycare/internal/ai"
	"citycare/internal/auth"
	"citycare/internal/common"
	"citycare/internal/complaint"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// serviceCatalog is the fixed set of municipal service categories.
var serviceCatalog = []complaint.ServiceCategory{
	{
		ID:          "roads",
		Name:        "Roads & Infrastructure",
		Description: "Report potholes, damaged roads, broken sidewalks, and traffic issues",
		Icon:        "Construction",
		Examples:    common.StringList{"Potholes", "Broken sidewalks", "Traffic signals", "Road signs"},
	},
	{
		ID:          "water",
		Name:        "Water Supply",
		Description: "Water leaks, pipe bursts, water quality issues, and supply problems",
		Icon:        "Droplets",
		Examples:    common.StringList{"Water leaks", "Pipe bursts", "Low pressure", "Water quality"},
	},
	{
		ID:          "electricity",
		Name:        "Electricity",
		Description: "Street lighting, power outages, electrical hazards, and maintenance",
		Icon:        "Zap",
		Examples:    common.StringList{"Street lights", "Power outages", "Electrical hazards", "Transformer issues"},
	},
	{
		ID:          "waste",
		Name:        "Waste Management",
		Description: "Garbage collection, recycling, illegal dumping, and sanitation",
		Icon:        "Trash2",
		Examples:    common.StringList{"Missed collection", "Illegal dumping", "Overflowing bins", "Recycling issues"},
	},
	{
		ID:          "safety",
		Name:        "Public Safety",
		Description: "Safety hazards, emergency situations, and security concerns",
		Icon:        "Shield",
		Examples:    common.StringList{"Safety hazards", "Emergency situations", "Security concerns", "Vandalism"},
	},
	{
		ID:          "parks",
		Name:        "Parks & Recreation",
		Description: "Park maintenance, playground issues, landscaping, and facilities",
		Icon:        "TreePine",
		Examples:    common.StringList{"Playground damage", "Tree maintenance", "Park facilities", "Landscaping"},
	},
}

// Seed inserts the default data every deployment needs: the services
// catalog, the initial admin account and the bot configuration row.
// All writes are idempotent.
func Seed(db *gorm.DB) error {
	if err := seedServices(db); err != nil {
		return err
	}
	if err := seedAdminUser(db); err != nil {
		return err
	}
	return seedBotConfig(db)
}

func seedServices(db *gorm.DB) error {
	for _, svc := range serviceCatalog {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&svc).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&auth.User{}).Where("email = ?", "admin@admin.com").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := auth.User{
		FirstName:    "Admin",
		LastName:     "User",
		Email:        "admin@admin.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
	}
	return db.Create(&admin).Error
}

func seedBotConfig(db *gorm.DB) error {
	cfg := ai.BotConfig{
		ID:                  1,
		IsEnabled:           true,
		MaxSessionDuration:  60,
		ConfidenceThreshold: 0.5,
		FallbackMessage:     ai.DefaultFallbackMessage,
		AdminNotifications:  true,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cfg).Error
}
