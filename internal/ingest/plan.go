package ingest

import (
	"strconv"

	"filestore/internal/ferrors"
)

// buildPlan walks every item in the request: leaf items become a single
// plannedFile at the batch's top level, archives are walked recursively
// via walkArchive. Each archive gets its own namespace under an index
// prefix so two archives in the same batch never collide on relative
// path even if their internal structures are identical.
func buildPlan(items []Item) (*Plan, error) {
	folders := make(map[string]plannedFolder)
	var files []plannedFile
	var total int64

	for i, item := range items {
		if item.Archive != nil {
			prefix := archivePrefix(i)
			if err := walkArchive(item.Archive, prefix, folders, &files); err != nil {
				return nil, ferrors.NewOpError("ingest.Plan", "", ferrors.ErrIoError)
			}
			continue
		}
		if item.Name == "" {
			return nil, ferrors.NewOpError("ingest.Plan", "", ferrors.ErrInvalidArgument)
		}
		files = append(files, plannedFile{
			name:      item.Name,
			extension: item.Extension,
			data:      item.Data,
		})
	}

	for _, f := range files {
		total += int64(len(f.data))
	}

	return &Plan{
		Folders:   sortedFolders(folders),
		Files:     files,
		TotalSize: total,
	}, nil
}

func archivePrefix(index int) string {
	return strconv.Itoa(index)
}
