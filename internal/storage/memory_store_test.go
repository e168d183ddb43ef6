package storage

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStore_Contract(t *testing.T) {
	testNodeStore(t, NewMemoryStore())
}

func TestMemoryStore_Empty(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}

	roots, err := store.FindRootNodes(ctx)
	if err != nil {
		t.Fatalf("FindRootNodes() error = %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("FindRootNodes() = %v, want empty", roots)
	}

	if _, err := store.FindByID(ctx, "R"); err != ErrNotFound {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ConcurrentReadsDuringSwap(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.InsertAll(ctx, sampleNodes()); err != nil {
		t.Fatalf("InsertAll() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				node, err := store.FindByID(ctx, "R")
				if err != nil {
					t.Errorf("FindByID() error = %v", err)
					return
				}
				if len(node.DescendantsOf(0)) != 2 {
					t.Errorf("root children = %v, want 2 entries", node.DescendantsOf(0))
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		if err := store.InsertAll(ctx, sampleNodes()); err != nil {
			t.Fatalf("InsertAll() error = %v", err)
		}
	}
	wg.Wait()
}
