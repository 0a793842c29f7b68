package query

// SQLiteConfig returns the versioned template catalog for the SQLite
// dialect. Placeholders $0..$n are positional; string parameters are
// rendered quoted and escaped by the Binder before substitution, and id
// lists arrive pre-joined for IN (...) clauses.
func SQLiteConfig() *Config {
	return &Config{
		SchemaVersion: LibrarySchemaVersion,
		Queries:       sqliteHeadQueries(),
		AtVersion: map[int64]map[string]TemplateQuery{
			6: sqliteV6Overrides(),
		},
		Migrations:   sqliteMigrations,
		LegacyChecks: sqliteLegacyChecks,
	}
}

func sqliteHeadQueries() map[string]TemplateQuery {
	return map[string]TemplateQuery{
		opSelectLastInsertID: {Query: `SELECT last_insert_rowid();`},

		// Types.
		opInsertType: {Query: `INSERT INTO Type (name, version, type_kind, description, input_type, output_type) VALUES ($0, $1, $2, $3, $4, $5);`},
		opSelectTypeByID: {Query: `SELECT id, name, version, description, input_type, output_type FROM Type WHERE id = $0 AND type_kind = $1;`},
		opSelectTypesByID: {Query: `SELECT id, name, version, description, input_type, output_type FROM Type WHERE id IN ($0) AND type_kind = $1;`},
		opSelectTypeByName: {Query: `SELECT id, name, version, description, input_type, output_type FROM Type WHERE name = $0 AND version IS NULL AND type_kind = $1;`},
		opSelectTypeByNameAndVersion: {Query: `SELECT id, name, version, description, input_type, output_type FROM Type WHERE name = $0 AND version = $1 AND type_kind = $2;`},
		opSelectAllTypes: {Query: `SELECT id, name, version, description, input_type, output_type FROM Type WHERE type_kind = $0;`},
		opInsertTypeProperty: {Query: `INSERT INTO TypeProperty (type_id, name, data_type) VALUES ($0, $1, $2);`},
		opSelectPropertyByTypeID: {Query: `SELECT type_id, name, data_type FROM TypeProperty WHERE type_id = $0;`},
		opInsertParentType: {Query: `INSERT INTO ParentType (type_id, parent_type_id) VALUES ($0, $1);`},
		opDeleteParentType: {Query: `DELETE FROM ParentType WHERE type_id = $0 AND parent_type_id = $1;`},
		opSelectParentTypesByTypeID: {Query: `SELECT type_id, parent_type_id FROM ParentType WHERE type_id IN ($0);`},

		// Artifacts.
		opInsertArtifact: {Query: `INSERT INTO Artifact (type_id, uri, state, name, create_time_since_epoch, last_update_time_since_epoch) VALUES ($0, $1, $2, $3, $4, $5);`},
		opSelectArtifactsByID: {Query: `SELECT id, type_id, uri, state, name, create_time_since_epoch, last_update_time_since_epoch FROM Artifact WHERE id IN ($0);`},
		opSelectArtifactByTypeIDAndName: {Query: `SELECT id, type_id, uri, state, name, create_time_since_epoch, last_update_time_since_epoch FROM Artifact WHERE type_id = $0 AND name = $1;`},
		opSelectArtifactsByTypeID: {Query: `SELECT id, type_id, uri, state, name, create_time_since_epoch, last_update_time_since_epoch FROM Artifact WHERE type_id = $0;`},
		opSelectArtifactsByURI: {Query: `SELECT id, type_id, uri, state, name, create_time_since_epoch, last_update_time_since_epoch FROM Artifact WHERE uri = $0;`},
		opUpdateArtifact: {Query: `UPDATE Artifact SET type_id = $1, uri = $2, state = $3, last_update_time_since_epoch = $4 WHERE id = $0;`},
		opInsertArtifactProperty: {Query: `INSERT INTO ArtifactProperty (artifact_id, name, is_custom_property, $0) VALUES ($1, $2, $3, $4);`},
		opSelectArtifactPropertyByID: {Query: `SELECT artifact_id, name, is_custom_property, int_value, double_value, string_value, struct_value FROM ArtifactProperty WHERE artifact_id IN ($0);`},
		opUpdateArtifactProperty: {Query: `UPDATE ArtifactProperty SET int_value = $1, double_value = $2, string_value = $3, struct_value = $4 WHERE artifact_id = $0 AND name = $5;`},
		opDeleteArtifactProperty: {Query: `DELETE FROM ArtifactProperty WHERE artifact_id = $0 AND name = $1;`},

		// Executions.
		opInsertExecution: {Query: `INSERT INTO Execution (type_id, last_known_state, name, create_time_since_epoch, last_update_time_since_epoch) VALUES ($0, $1, $2, $3, $4);`},
		opSelectExecutionsByID: {Query: `SELECT id, type_id, last_known_state, name, create_time_since_epoch, last_update_time_since_epoch FROM Execution WHERE id IN ($0);`},
		opSelectExecutionByTypeIDAndName: {Query: `SELECT id, type_id, last_known_state, name, create_time_since_epoch, last_update_time_since_epoch FROM Execution WHERE type_id = $0 AND name = $1;`},
		opSelectExecutionsByTypeID: {Query: `SELECT id, type_id, last_known_state, name, create_time_since_epoch, last_update_time_since_epoch FROM Execution WHERE type_id = $0;`},
		opUpdateExecution: {Query: `UPDATE Execution SET type_id = $1, last_known_state = $2, last_update_time_since_epoch = $3 WHERE id = $0;`},
		opInsertExecutionProperty: {Query: `INSERT INTO ExecutionProperty (execution_id, name, is_custom_property, $0) VALUES ($1, $2, $3, $4);`},
		opSelectExecutionPropertyByID: {Query: `SELECT execution_id, name, is_custom_property, int_value, double_value, string_value, struct_value FROM ExecutionProperty WHERE execution_id IN ($0);`},
		opUpdateExecutionProperty: {Query: `UPDATE ExecutionProperty SET int_value = $1, double_value = $2, string_value = $3, struct_value = $4 WHERE execution_id = $0 AND name = $5;`},
		opDeleteExecutionProperty: {Query: `DELETE FROM ExecutionProperty WHERE execution_id = $0 AND name = $1;`},

		// Contexts.
		opInsertContext: {Query: `INSERT INTO Context (type_id, name, create_time_since_epoch, last_update_time_since_epoch) VALUES ($0, $1, $2, $3);`},
		opSelectContextsByID: {Query: `SELECT id, type_id, name, create_time_since_epoch, last_update_time_since_epoch FROM Context WHERE id IN ($0);`},
		opSelectContextByTypeIDAndName: {Query: `SELECT id, type_id, name, create_time_since_epoch, last_update_time_since_epoch FROM Context WHERE type_id = $0 AND name = $1;`},
		opSelectContextsByTypeID: {Query: `SELECT id, type_id, name, create_time_since_epoch, last_update_time_since_epoch FROM Context WHERE type_id = $0;`},
		opUpdateContext: {Query: `UPDATE Context SET type_id = $1, name = $2, last_update_time_since_epoch = $3 WHERE id = $0;`},
		opInsertContextProperty: {Query: `INSERT INTO ContextProperty (context_id, name, is_custom_property, $0) VALUES ($1, $2, $3, $4);`},
		opSelectContextPropertyByID: {Query: `SELECT context_id, name, is_custom_property, int_value, double_value, string_value, struct_value FROM ContextProperty WHERE context_id IN ($0);`},
		opUpdateContextProperty: {Query: `UPDATE ContextProperty SET int_value = $1, double_value = $2, string_value = $3, struct_value = $4 WHERE context_id = $0 AND name = $5;`},
		opDeleteContextProperty: {Query: `DELETE FROM ContextProperty WHERE context_id = $0 AND name = $1;`},

		// Events and paths.
		opInsertEvent: {Query: `INSERT INTO Event (artifact_id, execution_id, type, milliseconds_since_epoch) VALUES ($0, $1, $2, $3);`},
		opSelectEventByArtifactIDs: {Query: `SELECT id, artifact_id, execution_id, type, milliseconds_since_epoch FROM Event WHERE artifact_id IN ($0);`},
		opSelectEventByExecutionIDs: {Query: `SELECT id, artifact_id, execution_id, type, milliseconds_since_epoch FROM Event WHERE execution_id IN ($0);`},
		opInsertEventPathIndex: {Query: `INSERT INTO EventPath (event_id, is_index_step, step_index) VALUES ($0, 1, $1);`},
		opInsertEventPathKey: {Query: `INSERT INTO EventPath (event_id, is_index_step, step_key) VALUES ($0, 0, $1);`},
		opSelectEventPathByEventIDs: {Query: `SELECT event_id, is_index_step, step_index, step_key FROM EventPath WHERE event_id IN ($0) ORDER BY rowid;`},

		// Associations and attributions.
		opInsertAssociation: {Query: `INSERT INTO Association (context_id, execution_id) VALUES ($0, $1);`},
		opSelectAssociationByContextIDs: {Query: `SELECT id, context_id, execution_id FROM Association WHERE context_id IN ($0);`},
		opSelectAssociationByExecutionID: {Query: `SELECT id, context_id, execution_id FROM Association WHERE execution_id = $0;`},
		opInsertAttribution: {Query: `INSERT INTO Attribution (context_id, artifact_id) VALUES ($0, $1);`},
		opSelectAttributionByContextID: {Query: `SELECT id, context_id, artifact_id FROM Attribution WHERE context_id = $0;`},
		opSelectAttributionByArtifactID: {Query: `SELECT id, context_id, artifact_id FROM Attribution WHERE artifact_id = $0;`},

		// Parent contexts.
		opInsertParentContext: {Query: `INSERT INTO ParentContext (context_id, parent_context_id) VALUES ($0, $1);`},
		opSelectParentContextsByContextID: {Query: `SELECT context_id, parent_context_id FROM ParentContext WHERE context_id = $0;`},
		opSelectChildContextsByContextID: {Query: `SELECT context_id, parent_context_id FROM ParentContext WHERE parent_context_id = $0;`},

		// Cascading deletes.
		opDeleteArtifactsByID: {Query: `DELETE FROM Artifact WHERE id IN ($0);`},
		opDeleteArtifactPropertiesByID: {Query: `DELETE FROM ArtifactProperty WHERE artifact_id IN ($0);`},
		opDeleteExecutionsByID: {Query: `DELETE FROM Execution WHERE id IN ($0);`},
		opDeleteExecutionPropertiesByID: {Query: `DELETE FROM ExecutionProperty WHERE execution_id IN ($0);`},
		opDeleteContextsByID: {Query: `DELETE FROM Context WHERE id IN ($0);`},
		opDeleteContextPropertiesByID: {Query: `DELETE FROM ContextProperty WHERE context_id IN ($0);`},
		opDeleteEventsByArtifactIDs: {Query: `DELETE FROM Event WHERE artifact_id IN ($0);`},
		opDeleteEventsByExecutionIDs: {Query: `DELETE FROM Event WHERE execution_id IN ($0);`},
		opDeleteEventPathsByArtifactIDs: {Query: `DELETE FROM EventPath WHERE event_id IN (SELECT id FROM Event WHERE artifact_id IN ($0));`},
		opDeleteEventPathsByExecutionIDs: {Query: `DELETE FROM EventPath WHERE event_id IN (SELECT id FROM Event WHERE execution_id IN ($0));`},
		opDeleteAssociationsByContextIDs: {Query: `DELETE FROM Association WHERE context_id IN ($0);`},
		opDeleteAssociationsByExecutionIDs: {Query: `DELETE FROM Association WHERE execution_id IN ($0);`},
		opDeleteAttributionsByContextIDs: {Query: `DELETE FROM Attribution WHERE context_id IN ($0);`},
		opDeleteAttributionsByArtifactIDs: {Query: `DELETE FROM Attribution WHERE artifact_id IN ($0);`},
		opDeleteParentContextsByParentIDs: {Query: `DELETE FROM ParentContext WHERE parent_context_id IN ($0);`},
		opDeleteParentContextsByChildIDs: {Query: `DELETE FROM ParentContext WHERE context_id IN ($0);`},

		// Schema version bookkeeping.
		opSelectSchemaVersion: {Query: `SELECT schema_version FROM SchemaVersion;`},
		opInsertSchemaVersion: {Query: `INSERT INTO SchemaVersion (schema_version) VALUES ($0);`},
		opUpdateSchemaVersion: {Query: `UPDATE SchemaVersion SET schema_version = $0;`},

		// Bulk id-listing helpers.
		opSelectAllArtifactIDs: {Query: `SELECT id FROM Artifact;`},
		opSelectAllExecutionIDs: {Query: `SELECT id FROM Execution;`},
		opSelectAllContextIDs: {Query: `SELECT id FROM Context;`},
	}
}

// sqliteV6Overrides lets the executor operate against a version 6
// database, which lacks the Type input_type and output_type columns.
func sqliteV6Overrides() map[string]TemplateQuery {
	return map[string]TemplateQuery{
		opInsertType: {Query: `INSERT INTO Type (name, version, type_kind, description) VALUES ($0, $1, $2, $3);`},
		opSelectTypeByID: {Query: `SELECT id, name, version, description, NULL AS input_type, NULL AS output_type FROM Type WHERE id = $0 AND type_kind = $1;`},
		opSelectTypesByID: {Query: `SELECT id, name, version, description, NULL AS input_type, NULL AS output_type FROM Type WHERE id IN ($0) AND type_kind = $1;`},
		opSelectTypeByName: {Query: `SELECT id, name, version, description, NULL AS input_type, NULL AS output_type FROM Type WHERE name = $0 AND version IS NULL AND type_kind = $1;`},
		opSelectTypeByNameAndVersion: {Query: `SELECT id, name, version, description, NULL AS input_type, NULL AS output_type FROM Type WHERE name = $0 AND version = $1 AND type_kind = $2;`},
		opSelectAllTypes: {Query: `SELECT id, name, version, description, NULL AS input_type, NULL AS output_type FROM Type WHERE type_kind = $0;`},
	}
}
