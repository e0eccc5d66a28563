package main

import (
	"context"
	"flag"
	"log"

	"github.com/brightops/clinic-scheduler/internal/config"
	dbpkg "github.com/brightops/clinic-scheduler/internal/db"
	infraRepo "github.com/brightops/clinic-scheduler/internal/infra/repository"
	ucSchedule "github.com/brightops/clinic-scheduler/internal/usecase/schedule"
)

// Retention batch: moves appointments that ended more than -days days ago
// into the archive table, clinic by clinic. Safe to re-run; already-moved
// rows are never counted again.
func main() {
	cfg := config.Load()

	days := flag.Int("days", cfg.ArchiveAfterDays, "archive appointments older than this many days")
	flag.Parse()

	if *days < 1 {
		log.Fatalf("invalid -days value: %d", *days)
	}

	db := dbpkg.NewDB(cfg)
	repo := infraRepo.NewScheduleGormRepository(db)
	archive := ucSchedule.NewArchive(repo, nil)

	ctx := context.Background()

	clinics, err := repo.ListClinics(ctx)
	if err != nil {
		log.Fatalf("failed to list clinics: %v", err)
	}

	total := 0
	for _, clinic := range clinics {
		count, err := archive.Execute(ctx, clinic.ID, *days)
		if err != nil {
			log.Fatalf("archive failed for clinic %d (%s): %v", clinic.ID, clinic.Slug, err)
		}
		if count > 0 {
			log.Printf("clinic %d (%s): archived %d appointments", clinic.ID, clinic.Slug, count)
		}
		total += count
	}

	log.Printf("Successfully archived %d appointments older than %d days.", total, *days)
}
