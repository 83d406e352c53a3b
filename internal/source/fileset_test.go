package source

import "testing"

func TestFileSetAddAndGet(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("top.sv", []byte("module top;\nendmodule\n"), 0, "work")
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("expected file, got nil")
	}
	if f.Path != "top.sv" || f.Library != "work" {
		t.Fatalf("unexpected file metadata: %+v", f)
	}
}

func TestFileSetGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if f := fs.Get(NoFileID); f != nil {
		t.Fatalf("expected nil for NoFileID, got %+v", f)
	}
	if f := fs.Get(FileID(99)); f != nil {
		t.Fatalf("expected nil for out-of-range id, got %+v", f)
	}
}

func TestFileSetResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("top.sv", []byte("aaa\nbbb\nccc\n"), 0, "")

	cases := []struct {
		offset   uint32
		wantLine uint32
		wantCol  uint32
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{8, 3, 1},
	}
	for _, c := range cases {
		pos := fs.Resolve(id, c.offset)
		if pos.Line != c.wantLine || pos.Col != c.wantCol {
			t.Fatalf("offset %d: got %+v, want line=%d col=%d", c.offset, pos, c.wantLine, c.wantCol)
		}
	}
}

func TestFileSetAddAssignsDistinctIDsForSamePath(t *testing.T) {
	fs := NewFileSet()
	a := fs.Add("dup.sv", []byte("x"), 0, "")
	b := fs.Add("dup.sv", []byte("y"), 0, "")
	if a == b {
		t.Fatalf("expected distinct FileIDs for repeated Add, got %d twice", a)
	}
}
