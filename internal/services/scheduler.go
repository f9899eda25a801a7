package services

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/deep-blue-pool/poolchem_backend/config"
	"github.com/deep-blue-pool/poolchem_backend/internal/controller"
	"github.com/deep-blue-pool/poolchem_backend/internal/export"
)

// Scheduler runs the periodic maintenance jobs: persistence health checks
// and the daily report snapshot. Job timing uses standard cron specs from
// the configuration.
type Scheduler struct {
	controller *controller.Controller
	exporter   *export.ExportService
	cfg        config.SchedulerConfig
	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	lastHealth bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(ctrl *controller.Controller, exporter *export.ExportService, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		controller: ctrl,
		exporter:   exporter,
		cfg:        cfg,
		cron:       cron.New(),
		lastHealth: true,
	}
}

// Start registers the cron jobs and begins the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		log.Println("⚠️  Scheduler: Already running")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.HealthCheckSpec, s.runHealthCheck); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.ExportSpec, s.runDailyExport); err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true

	log.Printf("🕐 Scheduler: Started - health checks %q, report export %q",
		s.cfg.HealthCheckSpec, s.cfg.ExportSpec)
	return nil
}

// Stop halts the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Println("🛑 Scheduler: Stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// runHealthCheck pings the persistence service and logs transitions.
func (s *Scheduler) runHealthCheck() {
	healthy := s.controller.CheckDatabaseHealth()

	s.mu.Lock()
	transition := healthy != s.lastHealth
	s.lastHealth = healthy
	s.mu.Unlock()

	if !transition {
		return
	}
	if healthy {
		log.Println("✅ Scheduler: Persistence service recovered")
	} else {
		log.Println("❌ Scheduler: Persistence service unreachable")
	}
}

// runDailyExport writes an Excel snapshot of the recent test history.
func (s *Scheduler) runDailyExport() {
	reports, err := s.controller.BuildReports(0)
	if err != nil {
		log.Printf("❌ Scheduler: Failed to build report history: %v", err)
		return
	}
	if len(reports) == 0 {
		log.Println("📄 Scheduler: No tests to export, skipping snapshot")
		return
	}

	data := export.ExportData{
		Reports: reports,
		Metadata: export.ExportMetadata{
			GeneratedAt: time.Now(),
			TotalTests:  len(reports),
		},
	}

	f, err := s.exporter.GenerateExcel(data)
	if err != nil {
		log.Printf("❌ Scheduler: Failed to generate Excel snapshot: %v", err)
		return
	}
	defer f.Close()

	filename := time.Now().Format("pool_report_2006-01-02.xlsx")
	if err := f.SaveAs(filename); err != nil {
		log.Printf("❌ Scheduler: Failed to save Excel snapshot: %v", err)
		return
	}

	log.Printf("✅ Scheduler: Exported %d test(s) to %s", len(reports), filename)
}
