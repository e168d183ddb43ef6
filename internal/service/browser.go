package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_browser.go -package=mocks -mock_names=Browser=MockBrowser taxonomy-browser/internal/service Browser

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"taxonomy-browser/internal/contextutil"
	"taxonomy-browser/internal/storage"
	"taxonomy-browser/internal/taxonomy"
)

const (
	// DefaultWindowLimit is used when a request leaves its limit unset.
	DefaultWindowLimit = 50
	// DefaultSearchLimit is used when a search leaves its limit unset.
	DefaultSearchLimit = 10
)

// ElementRequest asks for a node and a window of its children.
// An empty ID selects the root.
type ElementRequest struct {
	ID         string `validate:"nodeid"`
	AncestorID string `validate:"nodeid"`
	Start      int    `validate:"gte=0"`
	Limit      int    `validate:"gte=0,lte=1000"`
}

// ElementResponse is a node with one window of its children.
type ElementResponse struct {
	Ancestor    string
	Element     taxonomy.Node
	Descendants []taxonomy.Node
	// Root is set to the root id when the request selected the root.
	Root string
}

// LargestRequest asks for the children of a node with the most descendants.
type LargestRequest struct {
	ID         string `validate:"nodeid"`
	AncestorID string `validate:"nodeid"`
	Limit      int    `validate:"gte=0,lte=1000"`
}

// LargestResponse holds ranked children, largest first.
type LargestResponse struct {
	Largest []taxonomy.Node
}

// ChildrenRequest asks for records by id.
type ChildrenRequest struct {
	IDs []string `validate:"max=1000,dive,required,nodeid"`
}

// ChildrenResponse holds records in request order.
type ChildrenResponse struct {
	Descendants []taxonomy.Node
}

// SearchRequest is a case-insensitive substring search over label and description.
type SearchRequest struct {
	Query string `validate:"max=256"`
	Limit int    `validate:"gte=0,lte=100"`
}

// SearchResponse holds matches and the records of all their ancestors.
type SearchResponse struct {
	Elements  []taxonomy.Node
	Ancestors []taxonomy.Node
}

// PageRequest asks for everything the browse page shows at once.
type PageRequest struct {
	ID           string
	AncestorID   string
	Start        int
	Limit        int
	LargestLimit int
}

// PageResponse combines an element window with its largest children.
type PageResponse struct {
	Element ElementResponse
	Largest LargestResponse
}

// Browser provides read access to the taxonomy.
type Browser interface {
	// Element returns a node and a window of its children.
	Element(ctx context.Context, req ElementRequest) (ElementResponse, error)
	// Largest returns the largest children of a node within one chain.
	Largest(ctx context.Context, req LargestRequest) (LargestResponse, error)
	// Children returns records by id.
	Children(ctx context.Context, req ChildrenRequest) (ChildrenResponse, error)
	// Search finds nodes by label or description.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
	// Page fetches the element window and the largest children concurrently.
	Page(ctx context.Context, req PageRequest) (PageResponse, error)
}

// Options tunes request defaults.
type Options struct {
	DefaultLimit int
	SearchLimit  int
}

// browser implements Browser.
type browser struct {
	store        storage.NodeStore
	defaultLimit int
	searchLimit  int
	logger       *slog.Logger
}

// NewBrowser creates a new Browser over store.
func NewBrowser(store storage.NodeStore, opts Options) Browser {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultWindowLimit
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	return &browser{
		store:        store,
		defaultLimit: opts.DefaultLimit,
		searchLimit:  opts.SearchLimit,
		logger:       slog.Default(),
	}
}

// getLogger extracts logger from context or returns the service logger.
func (s *browser) getLogger(ctx context.Context) *slog.Logger {
	if ctx.Value(contextutil.LoggerKey()) != nil {
		return contextutil.LoggerFromContext(ctx)
	}
	return s.logger
}

// Element returns the node and its children in [Start, Start+Limit).
// The root is returned with its full child list.
func (s *browser) Element(ctx context.Context, req ElementRequest) (ElementResponse, error) {
	logger := s.getLogger(ctx)

	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid element request", "error", err)
		return ElementResponse{}, err
	}
	if req.Limit == 0 {
		req.Limit = s.defaultLimit
	}

	if req.ID == "" {
		root, err := s.root(ctx)
		if err != nil {
			return ElementResponse{}, err
		}
		descendants, err := s.store.FindByIDs(ctx, root.DescendantsOf(taxonomy.DefaultChain))
		if err != nil {
			logger.ErrorContext(ctx, "failed to load root children", "root", root.ID, "error", err)
			return ElementResponse{}, storeError(err, "load root children")
		}
		return ElementResponse{
			Element:     *root,
			Descendants: descendants,
			Root:        root.ID,
		}, nil
	}

	node, err := s.find(ctx, req.ID)
	if err != nil {
		return ElementResponse{}, err
	}
	s.checkAncestor(ctx, node, req.AncestorID)

	window := taxonomy.WindowedChildren(node, req.AncestorID, req.Start, req.Start+req.Limit-1)
	descendants := []taxonomy.Node{}
	if len(window) > 0 {
		descendants, err = s.store.FindByIDs(ctx, window)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load children window", "id", req.ID, "error", err)
			return ElementResponse{}, storeError(err, "load children window")
		}
	}

	logger.DebugContext(ctx, "element window served",
		"id", node.ID, "ancestor", req.AncestorID, "start", req.Start, "returned", len(descendants))
	return ElementResponse{
		Ancestor:    req.AncestorID,
		Element:     *node,
		Descendants: descendants,
	}, nil
}

// Largest ranks the whole child list of the resolved chain by each child's
// size at the parent's chain index and returns the top Limit.
func (s *browser) Largest(ctx context.Context, req LargestRequest) (LargestResponse, error) {
	logger := s.getLogger(ctx)

	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid largest request", "error", err)
		return LargestResponse{}, err
	}
	if req.Limit == 0 {
		req.Limit = s.defaultLimit
	}

	var node *taxonomy.Node
	var err error
	if req.ID == "" {
		node, err = s.root(ctx)
		req.AncestorID = ""
	} else {
		node, err = s.find(ctx, req.ID)
	}
	if err != nil {
		return LargestResponse{}, err
	}
	s.checkAncestor(ctx, node, req.AncestorID)

	q := taxonomy.LargestQuery(node, req.AncestorID, req.Limit)
	if len(q.IDs) == 0 {
		return LargestResponse{Largest: []taxonomy.Node{}}, nil
	}

	largest, err := s.store.RankByFieldAtIndex(ctx, q.IDs, q.Field, q.Index, q.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to rank children", "id", node.ID, "index", q.Index, "error", err)
		return LargestResponse{}, storeError(err, "rank children")
	}
	return LargestResponse{Largest: largest}, nil
}

// Children returns the records for req.IDs in request order.
func (s *browser) Children(ctx context.Context, req ChildrenRequest) (ChildrenResponse, error) {
	logger := s.getLogger(ctx)

	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid children request", "error", err)
		return ChildrenResponse{}, err
	}
	if len(req.IDs) == 0 {
		return ChildrenResponse{Descendants: []taxonomy.Node{}}, nil
	}

	descendants, err := s.store.FindByIDs(ctx, req.IDs)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load children", "count", len(req.IDs), "error", err)
		return ChildrenResponse{}, storeError(err, "load children")
	}
	return ChildrenResponse{Descendants: descendants}, nil
}

// Search returns up to Limit matches plus every ancestor of every match.
// An empty query matches nothing.
func (s *browser) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	logger := s.getLogger(ctx)

	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid search request", "error", err)
		return SearchResponse{}, err
	}
	if req.Query == "" {
		return SearchResponse{Elements: []taxonomy.Node{}, Ancestors: []taxonomy.Node{}}, nil
	}
	if req.Limit == 0 {
		req.Limit = s.searchLimit
	}

	elements, err := s.store.TextSearch(ctx, req.Query, req.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "text search failed", "query", req.Query, "error", err)
		return SearchResponse{}, storeError(err, "search")
	}

	ancestorIDs := collectAncestors(elements)
	ancestors := []taxonomy.Node{}
	if len(ancestorIDs) > 0 {
		ancestors, err = s.store.FindByIDs(ctx, ancestorIDs)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load search ancestors", "count", len(ancestorIDs), "error", err)
			return SearchResponse{}, storeError(err, "load search ancestors")
		}
	}

	logger.InfoContext(ctx, "search served", "query", req.Query, "matches", len(elements), "ancestors", len(ancestors))
	return SearchResponse{Elements: elements, Ancestors: ancestors}, nil
}

// Page runs Element and Largest for the same target in parallel.
func (s *browser) Page(ctx context.Context, req PageRequest) (PageResponse, error) {
	var resp PageResponse

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		el, err := s.Element(gCtx, ElementRequest{
			ID:         req.ID,
			AncestorID: req.AncestorID,
			Start:      req.Start,
			Limit:      req.Limit,
		})
		resp.Element = el
		return err
	})
	g.Go(func() error {
		largest, err := s.Largest(gCtx, LargestRequest{
			ID:         req.ID,
			AncestorID: req.AncestorID,
			Limit:      req.LargestLimit,
		})
		resp.Largest = largest
		return err
	})

	if err := g.Wait(); err != nil {
		return PageResponse{}, err
	}
	return resp, nil
}

// root returns the first top-level node in document order.
func (s *browser) root(ctx context.Context) (*taxonomy.Node, error) {
	roots, err := s.store.FindRootNodes(ctx)
	if err != nil {
		s.getLogger(ctx).ErrorContext(ctx, "failed to find root", "error", err)
		return nil, storeError(err, "find root")
	}
	if len(roots) == 0 {
		return nil, WrapError(ErrNotFound, "no root node")
	}
	return &roots[0], nil
}

func (s *browser) find(ctx context.Context, id string) (*taxonomy.Node, error) {
	node, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.getLogger(ctx).InfoContext(ctx, "node not found", "id", id)
		} else {
			s.getLogger(ctx).ErrorContext(ctx, "failed to find node", "id", id, "error", err)
		}
		return nil, storeError(err, "find node "+id)
	}
	return node, nil
}

// checkAncestor logs an ancestor that is not a parent of node. The request
// continues on the default chain.
func (s *browser) checkAncestor(ctx context.Context, node *taxonomy.Node, ancestorID string) {
	if _, err := node.ResolveChain(ancestorID); err != nil {
		s.getLogger(ctx).WarnContext(ctx, "falling back to default chain", "id", node.ID, "ancestor", ancestorID, "error", err)
	}
}

// collectAncestors returns the distinct ancestor ids of nodes in first-seen order.
func collectAncestors(nodes []taxonomy.Node) []string {
	seen := make(map[string]struct{})
	var ids []string
	for i := range nodes {
		for _, a := range nodes[i].Ancestors() {
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			ids = append(ids, a)
		}
	}
	return ids
}
