package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// TemplateQuery is one dialect-specific statement template. Placeholders
// $0..$n are substituted positionally with parameters already rendered by
// the Binder; the template text itself is never inspected beyond that.
type TemplateQuery struct {
	Query string
}

// MigrationScheme holds the statements that move the schema between
// version V-1 and V. Downgrade statements are destructive by nature:
// they drop whatever version V introduced.
type MigrationScheme struct {
	Upgrade   []string
	Downgrade []string
}

// Config is the versioned template catalog for one SQL dialect: the
// library schema version, the head template set, per-version overrides
// for operating against earlier schemas, the migration schemes, and the
// raw probes identifying the legacy pre-versioning layout.
type Config struct {
	SchemaVersion int64
	Queries       map[string]TemplateQuery
	AtVersion     map[int64]map[string]TemplateQuery
	Migrations    map[int64]MigrationScheme
	LegacyChecks  []string
}

// resolve merges the head template set with the overrides for the given
// schema version. Called once at executor construction.
func (c *Config) resolve(version int64) (map[string]TemplateQuery, error) {
	if version == c.SchemaVersion {
		return c.Queries, nil
	}
	overrides, ok := c.AtVersion[version]
	if !ok {
		return nil, fmt.Errorf("%w: no templates for schema version %d", types.ErrUnsupported, version)
	}
	merged := make(map[string]TemplateQuery, len(c.Queries))
	for name, tq := range c.Queries {
		merged[name] = tq
	}
	for name, tq := range overrides {
		merged[name] = tq
	}
	return merged, nil
}

// Operation names keying the template catalog.
const (
	opSelectLastInsertID = "select_last_insert_id"

	opInsertType                  = "insert_type"
	opSelectTypeByID              = "select_type_by_id"
	opSelectTypesByID             = "select_types_by_id"
	opSelectTypeByName            = "select_type_by_name"
	opSelectTypeByNameAndVersion  = "select_type_by_name_and_version"
	opSelectAllTypes              = "select_all_types"
	opInsertTypeProperty          = "insert_type_property"
	opSelectPropertyByTypeID      = "select_property_by_type_id"
	opInsertParentType            = "insert_parent_type"
	opDeleteParentType            = "delete_parent_type"
	opSelectParentTypesByTypeID   = "select_parent_type_by_type_id"

	opInsertArtifact                 = "insert_artifact"
	opSelectArtifactsByID            = "select_artifact_by_id"
	opSelectArtifactByTypeIDAndName  = "select_artifact_by_type_id_and_name"
	opSelectArtifactsByTypeID        = "select_artifacts_by_type_id"
	opSelectArtifactsByURI           = "select_artifacts_by_uri"
	opUpdateArtifact                 = "update_artifact"
	opInsertArtifactProperty         = "insert_artifact_property"
	opSelectArtifactPropertyByID     = "select_artifact_property_by_artifact_id"
	opUpdateArtifactProperty         = "update_artifact_property"
	opDeleteArtifactProperty         = "delete_artifact_property"

	opInsertExecution                = "insert_execution"
	opSelectExecutionsByID           = "select_execution_by_id"
	opSelectExecutionByTypeIDAndName = "select_execution_by_type_id_and_name"
	opSelectExecutionsByTypeID       = "select_executions_by_type_id"
	opUpdateExecution                = "update_execution"
	opInsertExecutionProperty        = "insert_execution_property"
	opSelectExecutionPropertyByID    = "select_execution_property_by_execution_id"
	opUpdateExecutionProperty        = "update_execution_property"
	opDeleteExecutionProperty        = "delete_execution_property"

	opInsertContext                = "insert_context"
	opSelectContextsByID           = "select_context_by_id"
	opSelectContextByTypeIDAndName = "select_context_by_type_id_and_name"
	opSelectContextsByTypeID       = "select_contexts_by_type_id"
	opUpdateContext                = "update_context"
	opInsertContextProperty        = "insert_context_property"
	opSelectContextPropertyByID    = "select_context_property_by_context_id"
	opUpdateContextProperty        = "update_context_property"
	opDeleteContextProperty        = "delete_context_property"

	opInsertEvent                 = "insert_event"
	opSelectEventByArtifactIDs    = "select_event_by_artifact_ids"
	opSelectEventByExecutionIDs   = "select_event_by_execution_ids"
	opInsertEventPathIndex        = "insert_event_path_index"
	opInsertEventPathKey          = "insert_event_path_key"
	opSelectEventPathByEventIDs   = "select_event_path_by_event_ids"

	opInsertAssociation              = "insert_association"
	opSelectAssociationByContextIDs  = "select_association_by_context_id"
	opSelectAssociationByExecutionID = "select_association_by_execution_id"
	opInsertAttribution              = "insert_attribution"
	opSelectAttributionByContextID   = "select_attribution_by_context_id"
	opSelectAttributionByArtifactID  = "select_attribution_by_artifact_id"

	opInsertParentContext             = "insert_parent_context"
	opSelectParentContextsByContextID = "select_parent_context_by_context_id"
	opSelectChildContextsByContextID  = "select_child_context_by_context_id"

	opDeleteArtifactsByID                = "delete_artifacts_by_id"
	opDeleteArtifactPropertiesByID       = "delete_artifact_properties_by_artifact_ids"
	opDeleteExecutionsByID               = "delete_executions_by_id"
	opDeleteExecutionPropertiesByID      = "delete_execution_properties_by_execution_ids"
	opDeleteContextsByID                 = "delete_contexts_by_id"
	opDeleteContextPropertiesByID        = "delete_context_properties_by_context_ids"
	opDeleteEventsByArtifactIDs          = "delete_events_by_artifact_ids"
	opDeleteEventsByExecutionIDs         = "delete_events_by_execution_ids"
	opDeleteEventPathsByArtifactIDs      = "delete_event_paths_by_artifact_ids"
	opDeleteEventPathsByExecutionIDs     = "delete_event_paths_by_execution_ids"
	opDeleteAssociationsByContextIDs     = "delete_associations_by_context_ids"
	opDeleteAssociationsByExecutionIDs   = "delete_associations_by_execution_ids"
	opDeleteAttributionsByContextIDs     = "delete_attributions_by_context_ids"
	opDeleteAttributionsByArtifactIDs    = "delete_attributions_by_artifact_ids"
	opDeleteParentContextsByParentIDs    = "delete_parent_contexts_by_parent_ids"
	opDeleteParentContextsByChildIDs     = "delete_parent_contexts_by_child_ids"

	opSelectSchemaVersion = "select_schema_version"
	opInsertSchemaVersion = "insert_schema_version"
	opUpdateSchemaVersion = "update_schema_version"

	opSelectAllArtifactIDs  = "select_all_artifact_ids"
	opSelectAllExecutionIDs = "select_all_execution_ids"
	opSelectAllContextIDs   = "select_all_context_ids"
)
