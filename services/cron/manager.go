package cron

import (
	"log"

	"github.com/robfig/cron/v3"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	schedule string
	sweep    *SweepJob
}

// NewCronManager creates a new cron manager running the orphan image sweep
// on the given cron schedule.
func NewCronManager(schedule string, sweep *SweepJob) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		schedule: schedule,
		sweep:    sweep,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	_, err := m.cron.AddFunc(m.schedule, func() {
		log.Println("[CRON] Starting job: orphan_image_sweep")
		m.sweep.Run()
	})
	if err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}
