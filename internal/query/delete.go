package query

// DeleteArtifactsByID removes the artifacts with the given ids together
// with their properties, events, event path steps, and attributions.
// Unknown ids are skipped, so repeating a delete succeeds.
func (e *Executor) DeleteArtifactsByID(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	list := e.bind.Int64List(ids)
	steps := []string{
		opDeleteEventPathsByArtifactIDs,
		opDeleteEventsByArtifactIDs,
		opDeleteAttributionsByArtifactIDs,
		opDeleteArtifactPropertiesByID,
		opDeleteArtifactsByID,
	}
	return e.deleteRows(steps, list)
}

// DeleteExecutionsByID removes the executions with the given ids
// together with their properties, events, event path steps, and
// associations.
func (e *Executor) DeleteExecutionsByID(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	list := e.bind.Int64List(ids)
	steps := []string{
		opDeleteEventPathsByExecutionIDs,
		opDeleteEventsByExecutionIDs,
		opDeleteAssociationsByExecutionIDs,
		opDeleteExecutionPropertiesByID,
		opDeleteExecutionsByID,
	}
	return e.deleteRows(steps, list)
}

// DeleteContextsByID removes the contexts with the given ids together
// with their properties, associations, attributions, and parent context
// edges on both sides.
func (e *Executor) DeleteContextsByID(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	list := e.bind.Int64List(ids)
	steps := []string{
		opDeleteAssociationsByContextIDs,
		opDeleteAttributionsByContextIDs,
		opDeleteParentContextsByParentIDs,
		opDeleteParentContextsByChildIDs,
		opDeleteContextPropertiesByID,
		opDeleteContextsByID,
	}
	return e.deleteRows(steps, list)
}

// DeleteParentContextsByParentIDs removes all parent context edges whose
// parent side is in ids.
func (e *Executor) DeleteParentContextsByParentIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return e.ExecuteIgnoreResult(opDeleteParentContextsByParentIDs, e.bind.Int64List(ids))
}

// DeleteParentContextsByChildIDs removes all parent context edges whose
// child side is in ids.
func (e *Executor) DeleteParentContextsByChildIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return e.ExecuteIgnoreResult(opDeleteParentContextsByChildIDs, e.bind.Int64List(ids))
}

func (e *Executor) deleteRows(ops []string, boundIDList string) error {
	for _, op := range ops {
		if err := e.ExecuteIgnoreResult(op, boundIDList); err != nil {
			return err
		}
	}
	return nil
}
