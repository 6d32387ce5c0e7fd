package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assignportal/internal/config"
	"assignportal/internal/db"
	"assignportal/internal/model"
	"assignportal/internal/repository"
	"assignportal/internal/validation"
)

// SeedAdmin is one entry in the admins seed file.
type SeedAdmin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func main() {
	file := flag.String("file", "admins.json", "path to the admins seed file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	admins, err := loadSeedFile(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d admins from %s", len(admins), *file)

	userRepo := repository.NewUserRepository(gormDB)
	seeded, skipped, err := seedAdmins(context.Background(), userRepo, admins)
	if err != nil {
		log.Fatalf("Failed to seed admins: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New admins created: %d", seeded)
	log.Printf("  - Skipped (existing or invalid): %d", skipped)
}

// loadSeedFile reads and parses the admins seed file.
func loadSeedFile(path string) ([]SeedAdmin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var admins []SeedAdmin
	if err := json.Unmarshal(data, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// seedAdmins creates admin accounts, skipping entries that already exist or
// fail credential validation.
func seedAdmins(ctx context.Context, repo repository.UserRepository, admins []SeedAdmin) (seeded int, skipped int, err error) {
	for _, admin := range admins {
		if err := validation.ValidateUsername(admin.Username); err != nil {
			log.Printf("Skipping admin with invalid username: %q", admin.Username)
			skipped++
			continue
		}
		if err := validation.ValidatePassword(admin.Password); err != nil {
			log.Printf("Skipping admin %s with invalid password", admin.Username)
			skipped++
			continue
		}

		existing, err := repo.FindByUsername(ctx, admin.Username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, skipped, err
		}
		if existing != nil {
			log.Printf("Admin %s already exists, skipping", admin.Username)
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return seeded, skipped, err
		}

		user := &model.User{
			Username:     admin.Username,
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
		}
		if err := repo.Create(ctx, user); err != nil {
			return seeded, skipped, err
		}
		seeded++
	}

	return seeded, skipped, nil
}
