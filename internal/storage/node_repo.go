package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_node_store.go -package=mocks taxonomy-browser/internal/storage NodeStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"taxonomy-browser/internal/taxonomy"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrUnsupportedField is returned when a ranking field is not indexed.
	ErrUnsupportedField = errors.New("unsupported rank field")
)

// NodeStore defines the interface for taxonomy record storage.
type NodeStore interface {
	// FindByID returns the node with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*taxonomy.Node, error)
	// FindByIDs returns the nodes for ids in the requested order. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]taxonomy.Node, error)
	// FindRootNodes returns every node without ancestors, in document order.
	FindRootNodes(ctx context.Context) ([]taxonomy.Node, error)
	// RankByFieldAtIndex ranks the nodes for ids by field at chain index, descending.
	// Nodes without a chain at index rank last; ties keep document order.
	RankByFieldAtIndex(ctx context.Context, ids []string, field taxonomy.RankField, index, limit int) ([]taxonomy.Node, error)
	// TextSearch returns nodes whose label or description contains query, ignoring case.
	TextSearch(ctx context.Context, query string, limit int) ([]taxonomy.Node, error)
	// InsertAll replaces the whole dataset with nodes in one atomic step.
	InsertAll(ctx context.Context, nodes []taxonomy.Node) error
	// Count returns the number of stored nodes.
	Count(ctx context.Context) (int, error)
}

// NodeRepo provides taxonomy record operations backed by SQLite.
// It implements the NodeStore interface.
type NodeRepo struct {
	db *sql.DB
}

// NewNodeRepo creates a new NodeRepo.
func NewNodeRepo(db *sql.DB) *NodeRepo {
	return &NodeRepo{db: db}
}

// FindByID returns a node by id.
// Returns nil and ErrNotFound if not found.
func (r *NodeRepo) FindByID(ctx context.Context, id string) (*taxonomy.Node, error) {
	var node taxonomy.Node
	err := r.db.QueryRowContext(ctx,
		"SELECT id, label, description FROM nodes WHERE id = ?",
		id,
	).Scan(&node.ID, &node.Label, &node.Description)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query node: %w", err)
	}

	nodes := []taxonomy.Node{node}
	if err := r.attachChains(ctx, nodes); err != nil {
		return nil, err
	}
	return &nodes[0], nil
}

// FindByIDs returns the nodes for ids, ordered like ids.
func (r *NodeRepo) FindByIDs(ctx context.Context, ids []string) ([]taxonomy.Node, error) {
	if len(ids) == 0 {
		return []taxonomy.Node{}, nil
	}
	idList, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ids: %w", err)
	}

	found, err := r.queryNodes(ctx,
		"SELECT id, label, description FROM nodes WHERE id IN (SELECT value FROM json_each(?)) ORDER BY position",
		string(idList),
	)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]taxonomy.Node, len(found))
	for _, n := range found {
		byID[n.ID] = n
	}

	ordered := make([]taxonomy.Node, 0, len(found))
	emitted := make(map[string]struct{}, len(found))
	for _, id := range ids {
		n, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := emitted[id]; dup {
			continue
		}
		emitted[id] = struct{}{}
		ordered = append(ordered, n)
	}
	return ordered, nil
}

// FindRootNodes returns all root nodes in document order.
func (r *NodeRepo) FindRootNodes(ctx context.Context) ([]taxonomy.Node, error) {
	return r.queryNodes(ctx,
		"SELECT id, label, description FROM nodes WHERE is_root = 1 ORDER BY position",
	)
}

// RankByFieldAtIndex ranks the nodes for ids by their size at chain index.
func (r *NodeRepo) RankByFieldAtIndex(ctx context.Context, ids []string, field taxonomy.RankField, index, limit int) ([]taxonomy.Node, error) {
	if field != taxonomy.FieldSize {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedField, field)
	}
	if len(ids) == 0 {
		return []taxonomy.Node{}, nil
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	idList, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ids: %w", err)
	}

	return r.queryNodes(ctx,
		`SELECT n.id, n.label, n.description
		 FROM nodes n
		 LEFT JOIN chains c ON c.node_id = n.id AND c.chain_index = ?
		 WHERE n.id IN (SELECT value FROM json_each(?))
		 ORDER BY c.size IS NULL, c.size DESC, n.position
		 LIMIT ?`,
		index, string(idList), limit,
	)
}

// TextSearch returns nodes whose label or description contains query.
// Matching runs on the folded columns written by InsertAll, since SQLite
// LIKE only folds ASCII.
func (r *NodeRepo) TextSearch(ctx context.Context, query string, limit int) ([]taxonomy.Node, error) {
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + escapeLike(fold(query)) + "%"
	return r.queryNodes(ctx,
		`SELECT id, label, description FROM nodes
		 WHERE label_fold LIKE ? ESCAPE '\' OR description_fold LIKE ? ESCAPE '\'
		 ORDER BY position
		 LIMIT ?`,
		pattern, pattern, limit,
	)
}

// InsertAll replaces every stored node with nodes inside a single transaction,
// so readers see either the previous dataset or the new one.
func (r *NodeRepo) InsertAll(ctx context.Context, nodes []taxonomy.Node) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chains"); err != nil {
		return fmt.Errorf("failed to clear chains: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM nodes"); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	stmtNode, err := tx.PrepareContext(ctx,
		"INSERT INTO nodes (id, position, label, description, is_root, label_fold, description_fold) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer stmtNode.Close()

	stmtChain, err := tx.PrepareContext(ctx,
		"INSERT INTO chains (node_id, chain_index, ancestor_id, size, children) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chain insert: %w", err)
	}
	defer stmtChain.Close()

	for pos := range nodes {
		n := &nodes[pos]
		if _, err := stmtNode.ExecContext(ctx, n.ID, pos, n.Label, n.Description, n.IsRoot(), fold(n.Label), fold(n.Description)); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", n.ID, err)
		}
		for idx, c := range n.Chains {
			children := c.Children
			if children == nil {
				children = []string{}
			}
			encoded, err := json.Marshal(children)
			if err != nil {
				return fmt.Errorf("failed to encode children of %s: %w", n.ID, err)
			}
			if _, err := stmtChain.ExecContext(ctx, n.ID, idx, c.AncestorID, c.Size, string(encoded)); err != nil {
				return fmt.Errorf("failed to insert chain %d of %s: %w", idx, n.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ingestion: %w", err)
	}
	return nil
}

// Count returns the number of stored nodes.
func (r *NodeRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return count, nil
}

// queryNodes runs a query selecting (id, label, description) and attaches chains.
func (r *NodeRepo) queryNodes(ctx context.Context, query string, args ...any) ([]taxonomy.Node, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	nodes := []taxonomy.Node{}
	for rows.Next() {
		var n taxonomy.Node
		if err := rows.Scan(&n.ID, &n.Label, &n.Description); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nodes: %w", err)
	}

	if err := r.attachChains(ctx, nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// attachChains loads the chains of every node in one query.
func (r *NodeRepo) attachChains(ctx context.Context, nodes []taxonomy.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	ids := make([]string, len(nodes))
	pos := make(map[string]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
		pos[n.ID] = i
	}
	idList, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode ids: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT node_id, ancestor_id, size, children FROM chains
		 WHERE node_id IN (SELECT value FROM json_each(?))
		 ORDER BY node_id, chain_index`,
		string(idList),
	)
	if err != nil {
		return fmt.Errorf("failed to query chains: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var nodeID, children string
		var c taxonomy.Chain
		if err := rows.Scan(&nodeID, &c.AncestorID, &c.Size, &children); err != nil {
			return fmt.Errorf("failed to scan chain: %w", err)
		}
		if err := json.Unmarshal([]byte(children), &c.Children); err != nil {
			return fmt.Errorf("failed to decode children of %s: %w", nodeID, err)
		}
		i := pos[nodeID]
		nodes[i].Chains = append(nodes[i].Chains, c)
	}
	return rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// fold normalizes text for case-insensitive matching in both stores.
func fold(s string) string {
	return strings.ToLower(s)
}
