// Package types defines the domain model, the MetadataSource interface,
// the RecordSet result shape, and the standard error types for the
// lineage metadata store.
package types
