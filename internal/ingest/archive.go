package ingest

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"sort"
	"strings"

	"filestore/internal/util"
)

// isJunk reports whether name (a zip entry's full path) should be
// skipped during planning: dotfiles, the usual OS sidecar files, any
// path segment beginning with a dot, and macOS resource-fork folders —
// checked against every path segment, not just the final one, so an
// entire junk subtree (e.g. __MACOSX/docs/a.txt) is skipped.
func isJunk(name string) bool {
	if strings.Contains(name, "/.") || strings.HasPrefix(name, ".") {
		return true
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "__") {
			return true
		}
		if seg == "Thumbs.db" || seg == ".DS_Store" {
			return true
		}
	}
	return false
}

// walkArchive reads a zip archive's entries into the folder/file plan
// rooted at parentRelPath (the archive's own position in the overall
// plan: the item's index in the batch, e.g. "0"). Entries are walked
// once in sorted name order; each entry's missing ancestor folders are
// registered as it is reached, so a parent folder is always planned
// before its children.
func walkArchive(r *zip.Reader, parentRelPath string, folders map[string]plannedFolder, files *[]plannedFile) error {
	var names []string
	for _, f := range r.File {
		if strings.Contains(f.Name, "..") {
			continue
		}
		if isJunk(f.Name) {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)

	byName := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		byName[f.Name] = f
	}

	ensureFolder := func(relDir string) {
		if relDir == "" {
			return
		}
		segments := strings.Split(relDir, "/")
		built := ""
		parent := ""
		for _, seg := range segments {
			if built == "" {
				built = seg
			} else {
				built = built + "/" + seg
			}
			full := joinRel(parentRelPath, built)
			fullParent := ""
			if parent != "" {
				fullParent = joinRel(parentRelPath, parent)
			}
			if _, ok := folders[full]; !ok {
				folders[full] = plannedFolder{
					relPath: full,
					parent:  fullParent,
					name:    seg,
					depth:   strings.Count(full, "/") + 1,
				}
			}
			parent = built
		}
	}

	for _, name := range names {
		f := byName[name]
		if f.FileInfo().IsDir() {
			ensureFolder(strings.TrimSuffix(name, "/"))
			continue
		}

		dir := path.Dir(name)
		if dir == "." {
			dir = ""
		}
		ensureFolder(dir)

		data, err := readZipFile(f)
		if err != nil {
			return err
		}

		base := path.Base(name)
		ext := ""
		fileName := base
		if i := strings.LastIndex(base, "."); i > 0 {
			ext = base[i+1:]
			fileName = base[:i]
		}

		*files = append(*files, plannedFile{
			parentRelPath: joinRel(parentRelPath, dir),
			name:          fileName,
			extension:     ext,
			data:          data,
		})
	}

	return nil
}

func joinRel(base, rel string) string {
	switch {
	case base == "":
		return rel
	case rel == "":
		return base
	default:
		return base + "/" + rel
	}
}

// readZipFile copies one archive entry into memory using a pooled
// scratch buffer rather than io.ReadAll's grow-as-you-go allocation,
// since ingest batches commonly carry many small entries.
func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	buf.Grow(int(f.UncompressedSize64))
	scratch := util.SmallPool.Get()
	defer util.SmallPool.Put(scratch)

	if _, err := io.CopyBuffer(&buf, rc, scratch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sortedFolders returns folders ordered by depth ascending so parents
// are reserved before children.
func sortedFolders(folders map[string]plannedFolder) []plannedFolder {
	out := make([]plannedFolder, 0, len(folders))
	for _, f := range folders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].depth != out[j].depth {
			return out[i].depth < out[j].depth
		}
		return out[i].relPath < out[j].relPath
	})
	return out
}
