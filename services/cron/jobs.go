package cron

import (
	"context"
	"log"
	"time"

	"github.com/studybridge/consultancy-api/handlers/admin"
	"github.com/studybridge/consultancy-api/services/images"
)

// SweepJob runs the orphan image sweep on a schedule. The reference set is
// recomputed from every document family on each run, so a sweep never
// deletes an image a freshly published document points at.
type SweepJob struct {
	admin  *admin.AdminHandler
	images *images.Service
}

// NewSweepJob creates the scheduled sweep job.
func NewSweepJob(adminHandler *admin.AdminHandler, imageService *images.Service) *SweepJob {
	return &SweepJob{admin: adminHandler, images: imageService}
}

// Run performs one sweep pass.
func (j *SweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	referenced, err := j.admin.ReferencedImageURLs(ctx)
	if err != nil {
		log.Printf("[CRON] orphan_image_sweep failed to collect references: %v", err)
		return
	}

	deleted, err := j.images.Cleanup(ctx, referenced)
	if err != nil {
		log.Printf("[CRON] orphan_image_sweep failed: %v", err)
		return
	}

	log.Printf("[CRON] orphan_image_sweep completed: %d orphan(s) removed, %d referenced", deleted, len(referenced))
}
