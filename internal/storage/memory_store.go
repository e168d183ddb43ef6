package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"taxonomy-browser/internal/taxonomy"
)

// memoryItem maps a node id to its document position.
type memoryItem struct {
	ID       string
	Position int
}

func memoryItemLess(a, b memoryItem) bool {
	return a.ID < b.ID
}

// memorySnapshot is an immutable dataset. InsertAll builds a new one and
// swaps it in.
type memorySnapshot struct {
	index *btree.BTreeG[memoryItem]
	nodes []taxonomy.Node
	roots []int
}

// MemoryStore is an in-process NodeStore. Returned nodes share their child
// slices with the store and must be treated as read-only.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *memorySnapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: buildSnapshot(nil)}
}

func buildSnapshot(nodes []taxonomy.Node) *memorySnapshot {
	snap := &memorySnapshot{
		index: btree.NewBTreeG[memoryItem](memoryItemLess),
		nodes: make([]taxonomy.Node, len(nodes)),
	}
	copy(snap.nodes, nodes)
	for pos := range snap.nodes {
		snap.index.Set(memoryItem{ID: snap.nodes[pos].ID, Position: pos})
		if snap.nodes[pos].IsRoot() {
			snap.roots = append(snap.roots, pos)
		}
	}
	return snap
}

func (s *MemoryStore) current() *memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (snap *memorySnapshot) lookup(id string) (int, bool) {
	item, ok := snap.index.Get(memoryItem{ID: id})
	if !ok {
		return 0, false
	}
	return item.Position, true
}

// FindByID implements NodeStore.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*taxonomy.Node, error) {
	snap := s.current()
	pos, ok := snap.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	n := snap.nodes[pos]
	return &n, nil
}

// FindByIDs implements NodeStore.
func (s *MemoryStore) FindByIDs(ctx context.Context, ids []string) ([]taxonomy.Node, error) {
	snap := s.current()
	nodes := make([]taxonomy.Node, 0, len(ids))
	emitted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := emitted[id]; dup {
			continue
		}
		pos, ok := snap.lookup(id)
		if !ok {
			continue
		}
		emitted[id] = struct{}{}
		nodes = append(nodes, snap.nodes[pos])
	}
	return nodes, nil
}

// FindRootNodes implements NodeStore.
func (s *MemoryStore) FindRootNodes(ctx context.Context) ([]taxonomy.Node, error) {
	snap := s.current()
	roots := make([]taxonomy.Node, len(snap.roots))
	for i, pos := range snap.roots {
		roots[i] = snap.nodes[pos]
	}
	return roots, nil
}

// RankByFieldAtIndex implements NodeStore.
func (s *MemoryStore) RankByFieldAtIndex(ctx context.Context, ids []string, field taxonomy.RankField, index, limit int) ([]taxonomy.Node, error) {
	if field != taxonomy.FieldSize {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedField, field)
	}
	snap := s.current()

	// Candidates in document order so ties resolve the same way as SQLite.
	positions := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		pos, ok := snap.lookup(id)
		if !ok {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	candidates := make([]taxonomy.Node, len(positions))
	for i, pos := range positions {
		candidates[i] = snap.nodes[pos]
	}
	return taxonomy.Rank(candidates, taxonomy.RankQuery{
		IDs:   ids,
		Field: field,
		Index: index,
		Limit: limit,
	}), nil
}

// TextSearch implements NodeStore.
func (s *MemoryStore) TextSearch(ctx context.Context, query string, limit int) ([]taxonomy.Node, error) {
	snap := s.current()
	needle := fold(query)

	matches := []taxonomy.Node{}
	for _, n := range snap.nodes {
		if limit > 0 && len(matches) >= limit {
			break
		}
		if strings.Contains(fold(n.Label), needle) ||
			strings.Contains(fold(n.Description), needle) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

// InsertAll implements NodeStore. The new dataset is built outside the lock
// and swapped in atomically.
func (s *MemoryStore) InsertAll(ctx context.Context, nodes []taxonomy.Node) error {
	snap := buildSnapshot(nodes)
	if snap.index.Len() != len(nodes) {
		return fmt.Errorf("failed to insert nodes: %d duplicate ids", len(nodes)-snap.index.Len())
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Count implements NodeStore.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	return len(s.current().nodes), nil
}
