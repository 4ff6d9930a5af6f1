package namespace

import "filestore/internal/ferrors"

// SetPinned sets the pinned flag on a folder or file, used by
// updateFileProperties in the RPC surface.
func (e *Engine) SetPinned(id ID, pinned bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if f, ok := e.folders[id]; ok {
		f.Pinned = pinned
		f.UpdatedAt = now
		return nil
	}
	if f, ok := e.files[id]; ok {
		f.Pinned = pinned
		f.UpdatedAt = now
		return nil
	}
	return ferrors.NewOpError("namespace.SetPinned", "", ferrors.ErrNotFound)
}
