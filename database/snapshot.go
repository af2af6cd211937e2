package database

import (
	"context"

	"github.com/rpupo63/volunteer-connect-backend/models"
	"golang.org/x/sync/errgroup"
)

// Snapshot is every project and application as read at one moment.
type Snapshot struct {
	Projects     []models.Project
	Applications []models.Application
}

// LoadSnapshot reads projects and applications concurrently.
func (d *Database) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		projects, err := d.projectRepo.FindAll(gctx)
		if err != nil {
			return err
		}
		snapshot.Projects = projects
		return nil
	})
	g.Go(func() error {
		applications, err := d.applicationRepo.FindAll(gctx)
		if err != nil {
			return err
		}
		snapshot.Applications = applications
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}
