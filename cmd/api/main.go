package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightops/clinic-scheduler/internal/config"
	dbpkg "github.com/brightops/clinic-scheduler/internal/db"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/lock"
	"github.com/brightops/clinic-scheduler/internal/middleware"
	"github.com/brightops/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	hours := domain.BusinessHours{
		Start:        cfg.BusinessStart,
		End:          cfg.BusinessEnd,
		SlotDuration: cfg.SlotDuration,
	}
	if err := hours.Validate(); err != nil {
		log.Fatalf("invalid business hours config: %v", err)
	}

	db := dbpkg.NewDB(cfg)

	// Redis is optional: without it the booking path falls back to the
	// unique index alone, which still guarantees slot exclusivity.
	var locker lock.Locker
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		locker = lock.NewSlotLocker(client, cfg.LockTTL)
	} else {
		log.Println("REDIS_ADDR not set, booking without slot locks")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
