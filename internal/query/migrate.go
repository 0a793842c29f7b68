package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// GetLibraryVersion returns the schema version this library targets.
func (e *Executor) GetLibraryVersion() int64 {
	return e.cfg.SchemaVersion
}

// GetSchemaVersion reads the schema version recorded in the database. A
// database without a version table is recognized as legacy (version 0)
// when it matches the pre-versioning layout; any other unversioned or
// inconsistent state is reported as data loss.
func (e *Executor) GetSchemaVersion() (int64, error) {
	version, found, err := e.detectSchemaVersion()
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: database has no schema", types.ErrDataLoss)
	}
	return version, nil
}

// detectSchemaVersion probes the database state. found is false only for
// a database with none of the managed tables, i.e. one that has never
// been initialized.
func (e *Executor) detectSchemaVersion() (version int64, found bool, err error) {
	tq, ok := e.queries[opSelectSchemaVersion]
	if !ok {
		return 0, false, fmt.Errorf("%w: no template for operation %q", types.ErrUnsupported, opSelectSchemaVersion)
	}
	rs, err := e.ExecuteRaw(tq.Query)
	if err == nil {
		switch len(rs.Records) {
		case 1:
			v, err := cellInt64(rs.Records[0].Values[0])
			if err != nil {
				return 0, false, err
			}
			return v, true, nil
		case 0:
			return 0, false, fmt.Errorf("%w: schema version table holds no row", types.ErrDataLoss)
		default:
			return 0, false, fmt.Errorf("%w: schema version table holds %d rows", types.ErrDataLoss, len(rs.Records))
		}
	}

	// No version table. A complete match against the pre-versioning
	// layout means version 0; a recognizable but unversioned layout is
	// unrecoverable.
	legacy := true
	for _, probe := range e.cfg.LegacyChecks {
		if _, err := e.ExecuteRaw(probe); err != nil {
			legacy = false
			break
		}
	}
	if legacy && len(e.cfg.LegacyChecks) > 0 {
		return 0, true, nil
	}
	if _, err := e.ExecuteRaw(`SELECT count(*) FROM Type;`); err != nil {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%w: tables exist but the schema version is unrecorded", types.ErrDataLoss)
}

// InitMetadataSource creates the full head schema and records the
// library version. Existing tables are left in place; the version row is
// rewritten.
func (e *Executor) InitMetadataSource() error {
	for _, stmt := range headDDL {
		if _, err := e.ExecuteRaw(stmt); err != nil {
			return err
		}
	}
	if _, err := e.ExecuteRaw(`DELETE FROM SchemaVersion;`); err != nil {
		return err
	}
	if err := e.ExecuteIgnoreResult(opInsertSchemaVersion, e.bind.Int64(e.cfg.SchemaVersion)); err != nil {
		return err
	}
	e.log.Info("initialized schema", "version", e.cfg.SchemaVersion)
	return nil
}

// InitMetadataSourceIfNotExists initializes an empty database and leaves
// an already current one untouched. A database at another version is
// refused so the caller can decide whether to migrate.
func (e *Executor) InitMetadataSourceIfNotExists() error {
	version, found, err := e.detectSchemaVersion()
	if err != nil {
		return err
	}
	if !found {
		return e.InitMetadataSource()
	}
	if version != e.cfg.SchemaVersion {
		return fmt.Errorf("%w: database is at schema version %d, library expects %d",
			types.ErrFailedPrecondition, version, e.cfg.SchemaVersion)
	}
	return nil
}

// UpgradeMetadataSourceIfOutOfDate migrates an initialized database
// forward to the library version, one version at a time. The recorded
// version is advanced after every step, so an interrupted run resumes
// from the last completed step. A database newer than the library is
// refused, as is any migration when enableMigration is false.
func (e *Executor) UpgradeMetadataSourceIfOutOfDate(enableMigration bool) error {
	version, found, err := e.detectSchemaVersion()
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: database is not initialized", types.ErrFailedPrecondition)
	}
	target := e.cfg.SchemaVersion
	if version == target {
		return nil
	}
	if version > target {
		return fmt.Errorf("%w: database is at schema version %d, newer than library version %d",
			types.ErrFailedPrecondition, version, target)
	}
	if !enableMigration {
		return fmt.Errorf("%w: database is at schema version %d, library expects %d and migration is disabled",
			types.ErrFailedPrecondition, version, target)
	}
	for v := version + 1; v <= target; v++ {
		scheme, ok := e.cfg.Migrations[v]
		if !ok {
			return fmt.Errorf("%w: no migration to schema version %d", types.ErrUnsupported, v)
		}
		for _, stmt := range scheme.Upgrade {
			if _, err := e.ExecuteRaw(stmt); err != nil {
				return fmt.Errorf("upgrading to schema version %d: %w", v, err)
			}
		}
		if err := e.recordSchemaVersion(v, v == 1); err != nil {
			return err
		}
		e.log.Info("upgraded schema", "version", v)
	}
	return nil
}

// DowngradeMetadataSource migrates the database back to toVersion.
// Downgrades are destructive: every step drops what its version
// introduced. Versions below 1 predate versioning and are refused.
func (e *Executor) DowngradeMetadataSource(toVersion int64) error {
	if toVersion < 1 {
		return fmt.Errorf("%w: cannot downgrade below schema version 1", types.ErrInvalidArgument)
	}
	version, found, err := e.detectSchemaVersion()
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: database is not initialized", types.ErrFailedPrecondition)
	}
	if toVersion > version {
		return fmt.Errorf("%w: database is at schema version %d, cannot downgrade to %d",
			types.ErrFailedPrecondition, version, toVersion)
	}
	for v := version; v > toVersion; v-- {
		scheme, ok := e.cfg.Migrations[v]
		if !ok {
			return fmt.Errorf("%w: no migration from schema version %d", types.ErrUnsupported, v)
		}
		for _, stmt := range scheme.Downgrade {
			if _, err := e.ExecuteRaw(stmt); err != nil {
				return fmt.Errorf("downgrading from schema version %d: %w", v, err)
			}
		}
		if err := e.recordSchemaVersion(v-1, false); err != nil {
			return err
		}
		e.log.Info("downgraded schema", "version", v-1)
	}
	return nil
}

func (e *Executor) recordSchemaVersion(v int64, insert bool) error {
	if insert {
		return e.ExecuteIgnoreResult(opInsertSchemaVersion, e.bind.Int64(v))
	}
	return e.ExecuteIgnoreResult(opUpdateSchemaVersion, e.bind.Int64(v))
}
