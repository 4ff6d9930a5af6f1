package namespace

import (
	"sync"
	"time"

	"filestore/internal/account"
	"filestore/internal/blobstore"
	"filestore/internal/ferrors"
)

// Engine is the per-account namespace index: folders and files keyed by a
// stable arena ID, guarded by one RWMutex. Bulk path rewrites under
// rename/move run as a single critical section under the write lock, so
// no reader ever observes a half-rewritten subtree.
type Engine struct {
	mu sync.RWMutex

	ownerID string
	folders map[ID]*Folder
	files   map[ID]*File
	nextID  ID

	blobs   *blobstore.Store
	account *account.Account

	now func() time.Time
}

// New constructs an empty Engine for one account. blobs and acct are used
// only by PermanentDelete/EmptyTrash to reclaim on-disk frames and
// usedBytes; every other operation touches only the in-memory index.
func New(ownerID string, blobs *blobstore.Store, acct *account.Account) *Engine {
	return &Engine{
		ownerID: ownerID,
		folders: make(map[ID]*Folder),
		files:   make(map[ID]*File),
		blobs:   blobs,
		account: acct,
		now:     time.Now,
	}
}

func (e *Engine) allocID() ID {
	e.nextID++
	return e.nextID
}

// The implicit root is parentID/folderID zero: parentPathAndSegments gives
// it an empty path and no pathSegments entries.

func joinPath(parentPath, name string) string {
	if parentPath == "" || parentPath == "/" {
		return "/" + name
	}
	return parentPath + "/" + name
}

// folderByID returns the folder (deleted or not); callers check isDeleted
// themselves.
func (e *Engine) folderByID(id ID) (*Folder, error) {
	if id == 0 {
		return nil, nil
	}
	f, ok := e.folders[id]
	if !ok {
		return nil, ferrors.NewOpError("namespace", "", ferrors.ErrNotFound)
	}
	return f, nil
}

func (e *Engine) fileByID(id ID) (*File, error) {
	f, ok := e.files[id]
	if !ok {
		return nil, ferrors.NewOpError("namespace", "", ferrors.ErrNotFound)
	}
	return f, nil
}

// parentPathAndSegments resolves the path/pathSegments a child of
// parentID would inherit. A zero parentID means the account root.
func (e *Engine) parentPathAndSegments(parentID ID) (path string, segs []PathSegment, err error) {
	if parentID == 0 {
		return "", nil, nil
	}
	parent, err := e.folderByID(parentID)
	if err != nil {
		return "", nil, err
	}
	if parent.isDeleted() {
		return "", nil, ferrors.NewOpError("namespace", "", ferrors.ErrNotFound)
	}
	return parent.Path, append([]PathSegment(nil), parent.PathSegments...), nil
}

// folderNameTaken and fileNameTaken report whether an active folder or file named name
// already exists among the active children of parentID. Folders and
// files are checked separately — a folder and a file may share a name
// under the same parent, but two folders or two files may not.
func (e *Engine) folderNameTaken(parentID ID, name string, excludeID ID) bool {
	for _, f := range e.folders {
		if f.ID == excludeID || f.isDeleted() {
			continue
		}
		if f.ParentID == parentID && f.Name == name {
			return true
		}
	}
	return false
}

func (e *Engine) fileNameTaken(folderID ID, name, extension string, excludeID ID) bool {
	for _, f := range e.files {
		if f.ID == excludeID || f.isDeleted() {
			continue
		}
		if f.FolderID == folderID && f.Name == name && f.Extension == extension {
			return true
		}
	}
	return false
}

// wouldCreateCycle reports whether moving id to become a child of
// newParentID would place it under its own subtree: true when newParentID
// is id itself or a descendant of id, found by walking newParentID's
// ancestor chain and checking whether id appears in it.
func (e *Engine) wouldCreateCycle(id, newParentID ID) bool {
	for newParentID != 0 {
		if newParentID == id {
			return true
		}
		f, ok := e.folders[newParentID]
		if !ok {
			return false
		}
		newParentID = f.ParentID
	}
	return false
}
