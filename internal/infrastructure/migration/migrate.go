package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for PostgreSQL driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"mindfulsteps/internal/app/server/config"
)

// Migrator покрывает используемую часть migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine создает мигратор по адресам источника и базы
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	db     config.DB
	engine MigrationEngine
}

func NewMigration(db config.DB, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		db:     db,
		engine: engine,
	}
}

// DefaultEngine открывает migrate.Migrate с file-источником
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// SourceURL путь к каталогу миграций в формате file-источника
func (mg *Migration) SourceURL() string {
	return "file://" + mg.db.Migrations
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.SourceURL(), mg.db.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
