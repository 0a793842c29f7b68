package query

// LibrarySchemaVersion is the schema generation this library targets. A
// database at a lower version is migrated forward one version at a time;
// a database at a higher version is refused.
const LibrarySchemaVersion int64 = 7

// Head DDL: the full table layout at LibrarySchemaVersion, used when
// initializing a fresh database. Migrating an older database forward
// yields the same observable layout.
const (
	createTypeTable = `CREATE TABLE IF NOT EXISTS Type (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  version TEXT,
  type_kind INT NOT NULL,
  description TEXT,
  input_type TEXT,
  output_type TEXT
);`

	createTypePropertyTable = `CREATE TABLE IF NOT EXISTS TypeProperty (
  type_id INT NOT NULL,
  name TEXT NOT NULL,
  data_type INT,
  PRIMARY KEY (type_id, name)
);`

	createArtifactTable = `CREATE TABLE IF NOT EXISTS Artifact (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  type_id INT NOT NULL,
  uri TEXT,
  state INT,
  name TEXT,
  create_time_since_epoch INT NOT NULL DEFAULT 0,
  last_update_time_since_epoch INT NOT NULL DEFAULT 0
);`

	createArtifactPropertyTable = `CREATE TABLE IF NOT EXISTS ArtifactProperty (
  artifact_id INT NOT NULL,
  name TEXT NOT NULL,
  is_custom_property TINYINT NOT NULL,
  int_value INT,
  double_value DOUBLE,
  string_value TEXT,
  struct_value TEXT,
  PRIMARY KEY (artifact_id, name, is_custom_property)
);`

	createExecutionTable = `CREATE TABLE IF NOT EXISTS Execution (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  type_id INT NOT NULL,
  last_known_state INT,
  name TEXT,
  create_time_since_epoch INT NOT NULL DEFAULT 0,
  last_update_time_since_epoch INT NOT NULL DEFAULT 0
);`

	createExecutionPropertyTable = `CREATE TABLE IF NOT EXISTS ExecutionProperty (
  execution_id INT NOT NULL,
  name TEXT NOT NULL,
  is_custom_property TINYINT NOT NULL,
  int_value INT,
  double_value DOUBLE,
  string_value TEXT,
  struct_value TEXT,
  PRIMARY KEY (execution_id, name, is_custom_property)
);`

	createContextTable = `CREATE TABLE IF NOT EXISTS Context (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  type_id INT NOT NULL,
  name TEXT NOT NULL,
  create_time_since_epoch INT NOT NULL DEFAULT 0,
  last_update_time_since_epoch INT NOT NULL DEFAULT 0
);`

	createContextPropertyTable = `CREATE TABLE IF NOT EXISTS ContextProperty (
  context_id INT NOT NULL,
  name TEXT NOT NULL,
  is_custom_property TINYINT NOT NULL,
  int_value INT,
  double_value DOUBLE,
  string_value TEXT,
  struct_value TEXT,
  PRIMARY KEY (context_id, name, is_custom_property)
);`

	createEventTable = `CREATE TABLE IF NOT EXISTS Event (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  artifact_id INT NOT NULL,
  execution_id INT NOT NULL,
  type INT NOT NULL,
  milliseconds_since_epoch INT
);`

	createEventPathTable = `CREATE TABLE IF NOT EXISTS EventPath (
  event_id INT NOT NULL,
  is_index_step TINYINT NOT NULL,
  step_index INT,
  step_key TEXT
);`

	createAssociationTable = `CREATE TABLE IF NOT EXISTS Association (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  context_id INT NOT NULL,
  execution_id INT NOT NULL
);`

	createAttributionTable = `CREATE TABLE IF NOT EXISTS Attribution (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  context_id INT NOT NULL,
  artifact_id INT NOT NULL
);`

	createParentTypeTable = `CREATE TABLE IF NOT EXISTS ParentType (
  type_id INT NOT NULL,
  parent_type_id INT NOT NULL,
  PRIMARY KEY (type_id, parent_type_id)
);`

	createParentContextTable = `CREATE TABLE IF NOT EXISTS ParentContext (
  context_id INT NOT NULL,
  parent_context_id INT NOT NULL,
  PRIMARY KEY (context_id, parent_context_id)
);`

	createSchemaVersionTable = `CREATE TABLE IF NOT EXISTS SchemaVersion (
  schema_version INT
);`
)

// Head index DDL.
const (
	idxUniqueType           = `CREATE UNIQUE INDEX IF NOT EXISTS idx_type_name_version_kind ON Type(name, version, type_kind);`
	idxUniqueArtifactName   = `CREATE UNIQUE INDEX IF NOT EXISTS idx_artifact_type_name ON Artifact(type_id, name);`
	idxUniqueExecutionName  = `CREATE UNIQUE INDEX IF NOT EXISTS idx_execution_type_name ON Execution(type_id, name);`
	idxUniqueContextName    = `CREATE UNIQUE INDEX IF NOT EXISTS idx_context_type_name ON Context(type_id, name);`
	idxEventArtifactID      = `CREATE INDEX IF NOT EXISTS idx_event_artifact_id ON Event(artifact_id);`
	idxEventExecutionID     = `CREATE INDEX IF NOT EXISTS idx_event_execution_id ON Event(execution_id);`
	idxEventPathEventID     = `CREATE INDEX IF NOT EXISTS idx_eventpath_event_id ON EventPath(event_id);`
	idxArtifactURI          = `CREATE INDEX IF NOT EXISTS idx_artifact_uri ON Artifact(uri);`
	idxAssociationContextID = `CREATE INDEX IF NOT EXISTS idx_association_context_id ON Association(context_id);`
	idxAttributionContextID = `CREATE INDEX IF NOT EXISTS idx_attribution_context_id ON Attribution(context_id);`
)

// headDDL lists all head statements in dependency order.
var headDDL = []string{
	createTypeTable,
	createTypePropertyTable,
	createArtifactTable,
	createArtifactPropertyTable,
	createExecutionTable,
	createExecutionPropertyTable,
	createContextTable,
	createContextPropertyTable,
	createEventTable,
	createEventPathTable,
	createAssociationTable,
	createAttributionTable,
	createParentTypeTable,
	createParentContextTable,
	createSchemaVersionTable,
	idxUniqueType,
	idxUniqueArtifactName,
	idxUniqueExecutionName,
	idxUniqueContextName,
	idxEventArtifactID,
	idxEventExecutionID,
	idxEventPathEventID,
	idxArtifactURI,
	idxAssociationContextID,
	idxAttributionContextID,
}

// sqliteMigrations maps each schema version V to the statements moving a
// V-1 database to V (Upgrade) and a V database back to V-1 (Downgrade).
// Version 1 has no downgrade: version 0 predates versioning and cannot be
// returned to safely.
var sqliteMigrations = map[int64]MigrationScheme{
	1: {
		Upgrade: []string{
			`CREATE TABLE SchemaVersion ( schema_version INT );`,
		},
	},
	2: {
		Upgrade: []string{
			`CREATE TABLE TypeProperty ( type_id INT NOT NULL, name TEXT NOT NULL, data_type INT, PRIMARY KEY (type_id, name) );`,
			`CREATE TABLE ArtifactProperty ( artifact_id INT NOT NULL, name TEXT NOT NULL, is_custom_property TINYINT NOT NULL, int_value INT, double_value DOUBLE, string_value TEXT, struct_value TEXT, PRIMARY KEY (artifact_id, name, is_custom_property) );`,
			`CREATE TABLE ExecutionProperty ( execution_id INT NOT NULL, name TEXT NOT NULL, is_custom_property TINYINT NOT NULL, int_value INT, double_value DOUBLE, string_value TEXT, struct_value TEXT, PRIMARY KEY (execution_id, name, is_custom_property) );`,
		},
		Downgrade: []string{
			`DROP TABLE IF EXISTS TypeProperty;`,
			`DROP TABLE IF EXISTS ArtifactProperty;`,
			`DROP TABLE IF EXISTS ExecutionProperty;`,
		},
	},
	3: {
		Upgrade: []string{
			`ALTER TABLE Type ADD COLUMN type_kind INT NOT NULL DEFAULT 1;`,
			`UPDATE Type SET type_kind = CASE WHEN is_artifact_type = 1 THEN 1 ELSE 0 END;`,
			`ALTER TABLE Type DROP COLUMN is_artifact_type;`,
			`CREATE TABLE Context ( id INTEGER PRIMARY KEY AUTOINCREMENT, type_id INT NOT NULL, name TEXT NOT NULL );`,
			`CREATE TABLE ContextProperty ( context_id INT NOT NULL, name TEXT NOT NULL, is_custom_property TINYINT NOT NULL, int_value INT, double_value DOUBLE, string_value TEXT, struct_value TEXT, PRIMARY KEY (context_id, name, is_custom_property) );`,
			`CREATE TABLE Association ( id INTEGER PRIMARY KEY AUTOINCREMENT, context_id INT NOT NULL, execution_id INT NOT NULL );`,
			`CREATE TABLE Attribution ( id INTEGER PRIMARY KEY AUTOINCREMENT, context_id INT NOT NULL, artifact_id INT NOT NULL );`,
		},
		Downgrade: []string{
			`ALTER TABLE Type ADD COLUMN is_artifact_type INT NOT NULL DEFAULT 1;`,
			`UPDATE Type SET is_artifact_type = CASE WHEN type_kind = 1 THEN 1 ELSE 0 END;`,
			`ALTER TABLE Type DROP COLUMN type_kind;`,
			`DROP TABLE IF EXISTS Context;`,
			`DROP TABLE IF EXISTS ContextProperty;`,
			`DROP TABLE IF EXISTS Association;`,
			`DROP TABLE IF EXISTS Attribution;`,
		},
	},
	4: {
		Upgrade: []string{
			`ALTER TABLE Event ADD COLUMN milliseconds_since_epoch INT;`,
			`CREATE TABLE EventPath ( event_id INT NOT NULL, is_index_step TINYINT NOT NULL, step_index INT, step_key TEXT );`,
		},
		Downgrade: []string{
			`ALTER TABLE Event DROP COLUMN milliseconds_since_epoch;`,
			`DROP TABLE IF EXISTS EventPath;`,
		},
	},
	5: {
		Upgrade: []string{
			`ALTER TABLE Artifact ADD COLUMN state INT;`,
			`ALTER TABLE Artifact ADD COLUMN name TEXT;`,
			`ALTER TABLE Artifact ADD COLUMN create_time_since_epoch INT NOT NULL DEFAULT 0;`,
			`ALTER TABLE Artifact ADD COLUMN last_update_time_since_epoch INT NOT NULL DEFAULT 0;`,
			`ALTER TABLE Execution ADD COLUMN last_known_state INT;`,
			`ALTER TABLE Execution ADD COLUMN name TEXT;`,
			`ALTER TABLE Execution ADD COLUMN create_time_since_epoch INT NOT NULL DEFAULT 0;`,
			`ALTER TABLE Execution ADD COLUMN last_update_time_since_epoch INT NOT NULL DEFAULT 0;`,
			`ALTER TABLE Context ADD COLUMN create_time_since_epoch INT NOT NULL DEFAULT 0;`,
			`ALTER TABLE Context ADD COLUMN last_update_time_since_epoch INT NOT NULL DEFAULT 0;`,
			`CREATE UNIQUE INDEX idx_artifact_type_name ON Artifact(type_id, name);`,
			`CREATE UNIQUE INDEX idx_execution_type_name ON Execution(type_id, name);`,
			`CREATE UNIQUE INDEX idx_context_type_name ON Context(type_id, name);`,
		},
		Downgrade: []string{
			`DROP INDEX IF EXISTS idx_artifact_type_name;`,
			`DROP INDEX IF EXISTS idx_execution_type_name;`,
			`DROP INDEX IF EXISTS idx_context_type_name;`,
			`ALTER TABLE Artifact DROP COLUMN state;`,
			`ALTER TABLE Artifact DROP COLUMN name;`,
			`ALTER TABLE Artifact DROP COLUMN create_time_since_epoch;`,
			`ALTER TABLE Artifact DROP COLUMN last_update_time_since_epoch;`,
			`ALTER TABLE Execution DROP COLUMN last_known_state;`,
			`ALTER TABLE Execution DROP COLUMN name;`,
			`ALTER TABLE Execution DROP COLUMN create_time_since_epoch;`,
			`ALTER TABLE Execution DROP COLUMN last_update_time_since_epoch;`,
			`ALTER TABLE Context DROP COLUMN create_time_since_epoch;`,
			`ALTER TABLE Context DROP COLUMN last_update_time_since_epoch;`,
		},
	},
	6: {
		Upgrade: []string{
			`CREATE TABLE ParentType ( type_id INT NOT NULL, parent_type_id INT NOT NULL, PRIMARY KEY (type_id, parent_type_id) );`,
			`CREATE TABLE ParentContext ( context_id INT NOT NULL, parent_context_id INT NOT NULL, PRIMARY KEY (context_id, parent_context_id) );`,
			`ALTER TABLE Type ADD COLUMN version TEXT;`,
			`ALTER TABLE Type ADD COLUMN description TEXT;`,
			`CREATE UNIQUE INDEX idx_type_name_version_kind ON Type(name, version, type_kind);`,
		},
		Downgrade: []string{
			`DROP INDEX IF EXISTS idx_type_name_version_kind;`,
			`DROP TABLE IF EXISTS ParentType;`,
			`DROP TABLE IF EXISTS ParentContext;`,
			`ALTER TABLE Type DROP COLUMN version;`,
			`ALTER TABLE Type DROP COLUMN description;`,
		},
	},
	7: {
		Upgrade: []string{
			`ALTER TABLE Type ADD COLUMN input_type TEXT;`,
			`ALTER TABLE Type ADD COLUMN output_type TEXT;`,
			`CREATE INDEX idx_event_artifact_id ON Event(artifact_id);`,
			`CREATE INDEX idx_event_execution_id ON Event(execution_id);`,
			`CREATE INDEX idx_eventpath_event_id ON EventPath(event_id);`,
			`CREATE INDEX idx_artifact_uri ON Artifact(uri);`,
			`CREATE INDEX idx_association_context_id ON Association(context_id);`,
			`CREATE INDEX idx_attribution_context_id ON Attribution(context_id);`,
		},
		Downgrade: []string{
			`DROP INDEX IF EXISTS idx_event_artifact_id;`,
			`DROP INDEX IF EXISTS idx_event_execution_id;`,
			`DROP INDEX IF EXISTS idx_eventpath_event_id;`,
			`DROP INDEX IF EXISTS idx_artifact_uri;`,
			`DROP INDEX IF EXISTS idx_association_context_id;`,
			`DROP INDEX IF EXISTS idx_attribution_context_id;`,
			`ALTER TABLE Type DROP COLUMN input_type;`,
			`ALTER TABLE Type DROP COLUMN output_type;`,
		},
	},
}

// sqliteLegacyChecks probe the pre-versioning (version 0) table layout.
// All must succeed for a database without a SchemaVersion table to be
// treated as legacy rather than unrecognizable.
var sqliteLegacyChecks = []string{
	`SELECT id, name, is_artifact_type FROM Type LIMIT 1;`,
	`SELECT id, type_id, uri FROM Artifact LIMIT 1;`,
	`SELECT id, type_id FROM Execution LIMIT 1;`,
	`SELECT id, artifact_id, execution_id, type FROM Event LIMIT 1;`,
}
