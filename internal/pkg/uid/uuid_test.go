package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerate(t *testing.T) {
	gen := NewUUID()

	a, b := gen.Generate(), gen.Generate()
	if a == b {
		t.Fatalf("Generate() returned duplicate %q", a)
	}

	id, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("Generate() = %q is not a UUID: %v", a, err)
	}
	if id.Version() != 7 {
		t.Errorf("version = %d, want 7", id.Version())
	}
}
