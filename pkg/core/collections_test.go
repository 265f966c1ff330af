package core

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestGetOrCreateCollection(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{dim: 8})
	ctx := context.Background()

	created, err := store.GetOrCreateCollection(ctx, "c1")
	if err != nil {
		t.Fatalf("GetOrCreateCollection() error = %v", err)
	}
	if created.Name != "c1" {
		t.Errorf("Name = %q, want c1", created.Name)
	}
	if created.Dimensions != 0 {
		t.Errorf("Dimensions = %d, want 0 before first write", created.Dimensions)
	}

	again, err := store.GetOrCreateCollection(ctx, "c1")
	if err != nil {
		t.Fatalf("GetOrCreateCollection() error = %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("repeated get-or-create returned id %d, want %d", again.ID, created.ID)
	}

	if _, err := store.GetOrCreateCollection(ctx, ""); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("GetOrCreateCollection(\"\") error = %v, want ErrEmptyCollection", err)
	}
}

// Concurrent creators racing on a previously absent name must converge on
// exactly one row.
func TestGetOrCreateCollectionConcurrent(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{dim: 8})
	ctx := context.Background()

	const workers = 10
	ids := make([]int64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			col, err := store.GetOrCreateCollection(ctx, "newcol")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = col.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("worker %d got id %d, want %d", i, ids[i], ids[0])
		}
	}

	collections, err := store.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(collections) != 1 {
		t.Errorf("got %d collections named newcol, want exactly 1", len(collections))
	}
}

func TestGetCollectionNotFound(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{dim: 8})

	_, err := store.GetCollection(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCollection() error = %v, want ErrNotFound", err)
	}
}

func TestListCollections(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{dim: 8})
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := store.GetOrCreateCollection(ctx, name); err != nil {
			t.Fatalf("GetOrCreateCollection(%q) error = %v", name, err)
		}
	}

	collections, err := store.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(collections) != len(names) {
		t.Fatalf("got %d collections, want %d", len(collections), len(names))
	}
	for i, name := range names {
		if collections[i].Name != name {
			t.Errorf("collections[%d].Name = %q, want %q", i, collections[i].Name, name)
		}
	}
}

func TestWritePinsDimensions(t *testing.T) {
	store := newTestStore(t, &stubEmbedder{dim: 8})
	ctx := context.Background()

	if _, err := store.Write(ctx, "c1", "first document", nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	col, err := store.GetCollection(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCollection() error = %v", err)
	}
	if col.Dimensions != 8 {
		t.Errorf("Dimensions = %d, want 8 after first write", col.Dimensions)
	}
}
