package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// InsertArtifact stores an artifact row and returns its generated id.
// A name collision within the type surfaces as ErrAlreadyExists.
func (e *Executor) InsertArtifact(a *types.Artifact) (int64, error) {
	id, err := e.ExecuteInsert(opInsertArtifact,
		e.bind.Int64(a.TypeID),
		e.bind.Text(a.URI),
		e.bind.ArtifactState(a.State),
		e.bind.NullableText(a.Name),
		e.bind.Int64(a.CreateTimeSinceEpoch),
		e.bind.Int64(a.LastUpdateTimeSinceEpoch),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("artifact on type %d: %w", a.TypeID, types.ErrAlreadyExists)
		}
		return 0, err
	}
	return id, nil
}

// SelectArtifactsByID returns the artifacts among ids that exist.
func (e *Executor) SelectArtifactsByID(ids []int64) ([]*types.Artifact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(opSelectArtifactsByID, e.bind.Int64List(ids))
	if err != nil {
		return nil, err
	}
	return decodeArtifacts(rs)
}

// SelectArtifactByTypeIDAndName returns the artifact with the given
// type and name, or nil.
func (e *Executor) SelectArtifactByTypeIDAndName(typeID int64, name string) (*types.Artifact, error) {
	rs, err := e.Execute(opSelectArtifactByTypeIDAndName, e.bind.Int64(typeID), e.bind.Text(name))
	if err != nil {
		return nil, err
	}
	if len(rs.Records) == 0 {
		return nil, nil
	}
	return decodeArtifact(rs, rs.Records[0])
}

// SelectArtifactsByTypeID returns every artifact of the given type.
func (e *Executor) SelectArtifactsByTypeID(typeID int64) ([]*types.Artifact, error) {
	rs, err := e.Execute(opSelectArtifactsByTypeID, e.bind.Int64(typeID))
	if err != nil {
		return nil, err
	}
	return decodeArtifacts(rs)
}

// SelectArtifactsByURI returns every artifact stored under the uri.
func (e *Executor) SelectArtifactsByURI(uri string) ([]*types.Artifact, error) {
	rs, err := e.Execute(opSelectArtifactsByURI, e.bind.Text(uri))
	if err != nil {
		return nil, err
	}
	return decodeArtifacts(rs)
}

// UpdateArtifact rewrites the mutable columns of an artifact row in
// place: type, uri, state, and the update timestamp.
func (e *Executor) UpdateArtifact(a *types.Artifact) error {
	return e.ExecuteIgnoreResult(opUpdateArtifact,
		e.bind.Int64(a.ID),
		e.bind.Int64(a.TypeID),
		e.bind.Text(a.URI),
		e.bind.ArtifactState(a.State),
		e.bind.Int64(a.LastUpdateTimeSinceEpoch),
	)
}

// InsertArtifactProperty stores one property value for an artifact.
func (e *Executor) InsertArtifactProperty(artifactID int64, name string, isCustom bool, v types.PropertyValue) error {
	return e.insertNodeProperty(opInsertArtifactProperty, artifactID, name, isCustom, v)
}

// SelectArtifactPropertiesByArtifactIDs returns all property rows of the
// given artifacts.
func (e *Executor) SelectArtifactPropertiesByArtifactIDs(ids []int64) ([]types.StoredProperty, error) {
	return e.selectNodeProperties(opSelectArtifactPropertyByID, "artifact_id", ids)
}

// UpdateArtifactProperty replaces the value stored under a property
// name, clearing the value columns of any previous kind.
func (e *Executor) UpdateArtifactProperty(artifactID int64, name string, v types.PropertyValue) error {
	return e.updateNodeProperty(opUpdateArtifactProperty, artifactID, name, v)
}

// DeleteArtifactProperty removes one property row. Missing rows are not
// an error.
func (e *Executor) DeleteArtifactProperty(artifactID int64, name string) error {
	return e.deleteNodeProperty(opDeleteArtifactProperty, artifactID, name)
}

func decodeArtifacts(rs *types.RecordSet) ([]*types.Artifact, error) {
	out := make([]*types.Artifact, 0, len(rs.Records))
	for _, rec := range rs.Records {
		a, err := decodeArtifact(rs, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeArtifact(rs *types.RecordSet, rec types.Record) (*types.Artifact, error) {
	id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
	if err != nil {
		return nil, err
	}
	typeID, err := cellInt64(rec.Values[rs.ColumnIndex("type_id")])
	if err != nil {
		return nil, err
	}
	stateCell, err := cellOptInt64(rec.Values[rs.ColumnIndex("state")])
	if err != nil {
		return nil, err
	}
	createTime, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("create_time_since_epoch")])
	if err != nil {
		return nil, err
	}
	updateTime, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("last_update_time_since_epoch")])
	if err != nil {
		return nil, err
	}
	a := &types.Artifact{
		ID:                       id,
		TypeID:                   typeID,
		Name:                     cellOptString(rec.Values[rs.ColumnIndex("name")]),
		CreateTimeSinceEpoch:     createTime,
		LastUpdateTimeSinceEpoch: updateTime,
	}
	if uri := cellOptString(rec.Values[rs.ColumnIndex("uri")]); uri != nil {
		a.URI = *uri
	}
	if stateCell != nil {
		s := types.ArtifactState(*stateCell)
		a.State = &s
	}
	return a, nil
}
