package db

import (
	"embed"
	"errors"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/migrations"
)

func runMigrations(fs embed.FS, dir, addr string, version uint) error {
	driver, err := iofs.New(fs, dir)
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return err
	}
	defer mg.Close()

	_, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty {
		return errors.New("database is in dirty state")
	}

	if err := mg.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigratePublic applies the public-schema migrations.
func MigratePublic() error {
	return runMigrations(migrations.Public, "public", config.DsnURL(), migrations.PublicVersion)
}

// MigrateOrgSchema applies the org-schema migrations inside the given
// schema. search_path is pinned through the DSN so schema_migrations and all
// tables land in the org's schema.
func MigrateOrgSchema(schemaName string) error {
	u, err := url.Parse(config.DsnURL())
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("search_path", schemaName)
	u.RawQuery = q.Encode()
	return runMigrations(migrations.Org, "orgschema", u.String(), migrations.OrgVersion)
}
