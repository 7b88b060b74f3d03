package boot

import (
	"log"
	"os"
	"tawheed/src/db"
	"tawheed/src/models"
	"tawheed/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.UserActivity{},
		&models.Package{},
		&models.Booking{},
		&models.HeroSection{},
		&models.Component{},
		&models.CMSPackage{},
		&models.HomePage{},
		&models.ContactUs{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// SeedSuperAdmin creates the initial superadmin account from env when no
// superadmin exists yet. A missing SUPERADMIN_EMAIL skips seeding.
func SeedSuperAdmin() {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	d := db.GetDb()
	var count int64
	if err := d.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		log.Printf("Could not check for existing superadmin: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Could not hash superadmin password: %s\n", err.Error())
		return
	}
	username := utils.DeriveUsername(email, func(candidate string) bool {
		var n int64
		d.Model(&models.User{}).Where("username = ?", candidate).Count(&n)
		return n > 0
	})
	admin := models.User{
		Username:   username,
		Email:      email,
		Password:   hashed,
		Role:       models.RoleSuperAdmin,
		IsVerified: true,
		IsActive:   true,
	}
	if err := d.Create(&admin).Error; err != nil {
		log.Printf("Could not seed superadmin account: %s\n", err.Error())
		return
	}
	log.Printf("Seeded superadmin account %s\n", username)
}
