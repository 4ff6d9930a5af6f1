package ingest

import "filestore/internal/namespace"

// reserveFolders walks plan.Folders in depth order (already sorted by
// buildPlan) and creates each one under the namespace engine, reusing an
// existing non-deleted folder of the same name under the same parent
// instead of erroring on NameConflict, per the reserve-folders step's
// duplicate-name rule. Returns the archive-relative-path -> folder ID
// mapping Stream uses to resolve each file's target folder, and the list
// of folder IDs actually created (for rollback; reused folders are not
// rolled back).
func reserveFolders(engine *namespace.Engine, rootParentID namespace.ID, plan *Plan) (map[string]namespace.ID, []namespace.ID, error) {
	resolved := make(map[string]namespace.ID)
	var created []namespace.ID

	for _, pf := range plan.Folders {
		parentID := rootParentID
		if pf.parent != "" {
			id, ok := resolved[pf.parent]
			if !ok {
				// buildPlan guarantees parents precede children; this
				// would indicate a bug in planning, not bad input.
				continue
			}
			parentID = id
		}

		if existing, ok := engine.FindFolder(parentID, pf.name); ok {
			resolved[pf.relPath] = existing.ID
			continue
		}

		snap, err := engine.CreateFolder(parentID, pf.name)
		if err != nil {
			return resolved, created, err
		}
		resolved[pf.relPath] = snap.ID
		created = append(created, snap.ID)
	}

	return resolved, created, nil
}
