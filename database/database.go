package database

import (
	"context"

	"github.com/rpupo63/volunteer-connect-backend/changefeed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Publisher receives a Change for every committed write.
type Publisher interface {
	Publish(ctx context.Context, collection string, change changefeed.Change) error
}

type Database struct {
	db              *gorm.DB
	feed            Publisher
	logger          zerolog.Logger
	projectRepo     *ProjectRepo
	applicationRepo *ApplicationRepo
	profileRepo     *ProfileRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance.
// feed may be nil, in which case writes are not announced.
func New(db *gorm.DB, feed Publisher) *Database {
	return &Database{
		db:              db,
		feed:            feed,
		logger:          log.With().Str("component", "database").Logger(),
		projectRepo:     NewProjectRepo(db),
		applicationRepo: NewApplicationRepo(db),
		profileRepo:     NewProfileRepo(db),
	}
}

// Accessor methods for each repository

func (d *Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d *Database) ApplicationRepo() *ApplicationRepo {
	return d.applicationRepo
}

func (d *Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

// Ping checks that the primary database answers.
func (d *Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}

// publish announces a committed write. A failed publish only delays listeners until the
// next change, so it is logged and not returned.
func (d *Database) publish(ctx context.Context, collection string, change changefeed.Change) {
	if d.feed == nil {
		return
	}
	if err := d.feed.Publish(ctx, collection, change); err != nil {
		d.logger.Warn().Err(err).
			Str("collection", collection).
			Str("op", string(change.Op)).
			Str("id", change.ID.String()).
			Msg("failed to publish change")
	}
}
