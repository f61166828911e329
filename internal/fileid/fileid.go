// Package fileid derives stable document ids for documents loaded from files.
package fileid

import (
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const prefix = "file:"

// FileDocID returns the id of the single document held by the file at path.
// Equivalent spellings of the same path map to the same id.
func FileDocID(path string) string {
	sum := xxhash.Sum64String(filepath.Clean(path))
	return prefix + strconv.FormatUint(sum, 16)
}

// EntryDocID returns the id of the n-th document (zero based) of a multi-document file.
func EntryDocID(path string, n int) string {
	return FileDocID(path) + "#" + strconv.Itoa(n)
}
