package foreign

import (
	"path/filepath"
	"testing"

	"github.com/amber-lang/amber/internal/types"
)

func TestStoreRoundTrip(t *testing.T) {
	original := loadCanvasRegistry(t)
	path := filepath.Join(t.TempDir(), "metadata.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore error: %v", err)
	}
	if err := store.Save(original); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	wantNames := original.ClassNames()
	gotNames := loaded.ClassNames()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("loaded %d classes %v, want %d %v", len(gotNames), gotNames, len(wantNames), wantNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Errorf("class name %d = %s, want %s", i, gotNames[i], wantNames[i])
		}
	}

	open, ok := loaded.StaticMethod("KCanvas", "open")
	if !ok {
		t.Fatalf("StaticMethod(KCanvas, open) missing after reload")
	}
	if open.Descriptor != "(Ljava/lang/String;II)V" {
		t.Errorf("open descriptor = %q, want original", open.Descriptor)
	}

	canvas, ok := loaded.Class("Canvas")
	if !ok {
		t.Fatalf("Class(Canvas) missing after reload")
	}
	if !canvas.HasConstructor || len(canvas.ConstructorParams) != 2 {
		t.Errorf("constructor lost in round trip: %v", canvas.ConstructorParams)
	}
	if canvas.Fields["title"].Type != types.String {
		t.Errorf("Canvas.title = %s after reload, want String", canvas.Fields["title"].Type)
	}

	cb, ok := loaded.Class("MouseCallback")
	if !ok {
		t.Fatalf("Class(MouseCallback) missing after reload")
	}
	if !cb.IsSAMInterface() {
		t.Errorf("SAM interface flag lost in round trip")
	}
}

func TestStoreSaveIsIdempotent(t *testing.T) {
	registry := loadCanvasRegistry(t)
	path := filepath.Join(t.TempDir(), "metadata.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore error: %v", err)
	}
	defer store.Close()

	if err := store.Save(registry); err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if err := store.Save(registry); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got, want := len(loaded.ClassNames()), len(registry.ClassNames()); got != want {
		t.Errorf("class count after double save = %d, want %d", got, want)
	}
}
