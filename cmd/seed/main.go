package main

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brightops/clinic-scheduler/internal/config"
	dbpkg "github.com/brightops/clinic-scheduler/internal/db"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/models"
	"github.com/brightops/clinic-scheduler/internal/timezone"
)

// Demo data for local development: one clinic, a staff login, a handful of
// patients, and calendar appointments scattered over the next two weeks so
// the availability endpoint has something to filter.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	gofakeit.Seed(time.Now().UnixNano())

	clinic, err := seedClinic(db, cfg)
	if err != nil {
		log.Fatalf("seed clinic: %v", err)
	}

	if err := seedUsers(db, clinic); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	if err := seedAppointments(db, clinic, 20); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedClinic(db *gorm.DB, cfg *config.Config) (*models.Clinic, error) {
	var clinic models.Clinic
	if err := db.Where("slug = ?", "demo-clinic").First(&clinic).Error; err == nil {
		log.Println("demo clinic already exists, reusing")
		return &clinic, nil
	}

	clinic = models.Clinic{
		Name:     "Demo Clinic",
		Slug:     "demo-clinic",
		Phone:    gofakeit.Phone(),
		Address:  gofakeit.Address().Address,
		Timezone: cfg.DefaultTimezone,
	}

	if err := db.Create(&clinic).Error; err != nil {
		return nil, err
	}

	log.Printf("created clinic %d (%s)", clinic.ID, clinic.Slug)
	return &clinic, nil
}

func seedUsers(db *gorm.DB, clinic *models.Clinic) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{
			ClinicID:     clinic.ID,
			Name:         "Demo Staff",
			Email:        "staff@demo-clinic.test",
			PasswordHash: string(hashed),
			Role:         models.RoleStaff,
		},
	}

	for i := 0; i < 5; i++ {
		users = append(users, models.User{
			ClinicID:     clinic.ID,
			Name:         gofakeit.Name(),
			Email:        fmt.Sprintf("patient%d@demo-clinic.test", i+1),
			PasswordHash: string(hashed),
			Phone:        gofakeit.Phone(),
			Role:         models.RolePatient,
		})
	}

	for i := range users {
		err := db.Where("email = ?", users[i].Email).
			FirstOrCreate(&users[i]).Error
		if err != nil {
			return err
		}
	}

	log.Printf("seeded %d users (password: password123)", len(users))
	return nil
}

func seedAppointments(db *gorm.DB, clinic *models.Clinic, count int) error {
	loc := timezone.Location(clinic.Timezone)
	now := time.Now().In(loc)

	types := []domain.AppointmentType{
		domain.TypeCheckup,
		domain.TypeFollowup,
		domain.TypeEmergency,
	}

	for i := 0; i < count; i++ {
		day := now.AddDate(0, 0, gofakeit.Number(0, 13))
		hour := gofakeit.Number(9, 15)

		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
		end := start.Add(time.Duration(gofakeit.Number(1, 3)) * 30 * time.Minute)

		ap := models.Appointment{
			ClinicID:  clinic.ID,
			Title:     gofakeit.Name(),
			StartTime: start,
			EndTime:   end,
			Type:      string(types[gofakeit.Number(0, len(types)-1)]),
		}

		if err := db.Create(&ap).Error; err != nil {
			return err
		}
	}

	log.Printf("seeded %d appointments", count)
	return nil
}
