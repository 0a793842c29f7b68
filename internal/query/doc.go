// Package query implements the storage core of the lineage metadata
// store: a template-driven query executor over a MetadataSource, typed
// CRUD for the three node kinds and their types, relationship edges,
// id listing with filtering and pagination, cascading deletes, and the
// schema version manager.
//
// Every operation assumes the caller holds an open connection and an
// active transaction on the MetadataSource; atomicity across the
// statements of a single operation is the caller's transaction scope.
package query
