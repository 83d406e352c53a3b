package source

import "fortio.org/safecast"

// FileSet owns every source buffer added to a Compilation and resolves byte
// offsets to human-readable positions for diagnostics.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty set.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers content under path and returns a fresh FileID, even if path
// was already added (each syntax tree gets its own buffer identity).
func (fs *FileSet) Add(path string, content []byte, flags FileFlags, library string) FileID {
	n, err := safecast.Conv[uint32](len(fs.files) + 1)
	if err != nil {
		panic(err)
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Library: library,
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// Get returns the file for id, or nil if id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	if id == NoFileID || int(id) > len(fs.files) {
		return nil
	}
	return &fs.files[id-1]
}

// Resolve converts a byte offset within file id into a 1-based line/column.
func (fs *FileSet) Resolve(id FileID, offset uint32) LineCol {
	f := fs.Get(id)
	if f == nil {
		return LineCol{}
	}
	// binary search for the last line start <= offset
	lo, hi := 0, len(f.LineIdx)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.LineIdx[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 1-based because LineIdx[0] is byte 0 of line 1
	col := offset - f.LineIdx[line-1] + 1
	return LineCol{Line: uint32(line), Col: col}
}

func buildLineIndex(content []byte) []uint32 {
	idx := []uint32{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			idx = append(idx, uint32(i+1))
		}
	}
	return idx
}
