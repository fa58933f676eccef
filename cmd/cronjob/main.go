package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"carrental-backend/internal/config"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'lifecycle-sweep', 'vehicle-status-sync', 'maintenance-release', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	rentalService := service.NewRentalService(store)
	maintenanceService := service.NewMaintenanceService(store)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Rental:      rentalService,
		Maintenance: maintenanceService,
	}, cfg)

	// Handle run-once mode
	if *runOnce != "" {
		runJobOnce(jobRunner, *runOnce)
		return
	}

	// Start scheduler
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig.String())

	sched.Stop()
	logger.Info("Cronjob runner stopped")
}

func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	logger.Info("Running job once", "job", jobName)

	switch jobName {
	case "lifecycle-sweep":
		jobRunner.SweepRentalLifecycle()
	case "vehicle-status-sync":
		jobRunner.SyncRentedVehicles()
	case "maintenance-release":
		jobRunner.ReleaseMaintainedVehicles()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		os.Exit(1)
	}

	logger.Info("Job execution completed", "job", jobName)
}
