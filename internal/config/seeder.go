package config

import (
	"errors"
	"log"

	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedDatabase seeds the initial data required for the system to operate.
// All seeds are idempotent; re-running on an existing database is a no-op.
func SeedDatabase(db *gorm.DB, cfg *Config) error {
	if err := seedSuperAdmin(db, cfg); err != nil {
		return err
	}
	if err := seedSections(db); err != nil {
		return err
	}
	return nil
}

// seedSuperAdmin creates the super admin account if it does not exist yet
func seedSuperAdmin(db *gorm.DB, cfg *Config) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(cfg.SuperAdmin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: cfg.SuperAdmin.Username,
		Email:    cfg.SuperAdmin.Email,
		Password: hashed,
		Role:     models.RoleSuperAdmin,
		Status:   models.StatusApproved,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin seeded: %s", admin.Username)
	if cfg.IsProd() && cfg.SuperAdmin.Password == "ChangeMe@123" {
		log.Println("⚠️ Super admin is using the default password, change it immediately")
	}
	return nil
}

// seedSections seeds the CMS section catalog used by the permission system
func seedSections(db *gorm.DB) error {
	sections := []models.Section{
		{Code: "banners", Name: "Home Banners", SortOrder: 1},
		{Code: "media", Name: "Media & Posts", SortOrder: 2},
		{Code: "programs", Name: "Our Work", SortOrder: 3},
		{Code: "team", Name: "Team & Mentors", SortOrder: 4},
		{Code: "donations", Name: "Donations", SortOrder: 5},
		{Code: "users", Name: "User Management", SortOrder: 6},
		{Code: "registrations", Name: "Registration Requests", SortOrder: 7},
		{Code: "permissions", Name: "Permissions", SortOrder: 8},
	}

	seeded := 0
	for i := range sections {
		s := &sections[i]
		s.IsActive = true

		var count int64
		if err := db.Model(&models.Section{}).Where("code = ?", s.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(s).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("✅ Seeded %d sections", seeded)
	}
	return nil
}
