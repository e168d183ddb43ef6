package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"taxonomy-browser/internal/service"
	"taxonomy-browser/internal/taxonomy"
)

// PageHandler serves the browse page for one node. The page carries the
// same data as the JSON endpoints, embedded for the client to start from.
type PageHandler struct {
	browser      service.Browser
	largestLimit int
	parser       goldmark.Markdown
	template     *template.Template
	logger       *slog.Logger
}

// pageChild is one row of a child list.
type pageChild struct {
	ID    string
	Label string
	Size  int
	Href  string
}

// pageData holds template data for the browse page.
type pageData struct {
	Title       string
	ID          string
	Ancestor    string
	Description template.HTML
	Descendants []pageChild
	Largest     []pageChild
	InitialData template.JS
}

// initialData is embedded into the page as JSON.
type initialData struct {
	ElementResponse
	Largest []taxonomy.Node `json:"largest"`
}

// NewPageHandler creates a new handler for the browse page.
func NewPageHandler(browser service.Browser, largestLimit int) *PageHandler {
	tmpl := template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} | Taxonomy browser</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.6;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      color: #fff;
    }
    section {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 1.5rem 2rem;
      margin-bottom: 1.5rem;
    }
    a {
      color: #60a5fa;
      text-decoration: none;
    }
    a:hover {
      text-decoration: underline;
    }
    .meta, .size {
      color: #94a3b8;
      font-size: 0.95rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.ID}}{{if .Ancestor}} &middot; via {{.Ancestor}}{{end}} &middot; <a href="/">top</a></p>
    {{.Description}}
  </header>
  <section>
    <h2>Largest</h2>
    <ol>{{range .Largest}}
      <li><a href="{{.Href}}">{{.Label}}</a> <span class="size">{{.Size}}</span></li>{{end}}
    </ol>
  </section>
  <section>
    <h2>Children</h2>
    <ul>{{range .Descendants}}
      <li><a href="{{.Href}}">{{.Label}}</a> <span class="size">{{.Size}}</span></li>{{else}}
      <li class="meta">No children</li>{{end}}
    </ul>
  </section>
  <script id="initial-data" type="application/json">{{.InitialData}}</script>
</body>
</html>`))

	return &PageHandler{
		browser:      browser,
		largestLimit: largestLimit,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.Linkify,
				extension.Typographer,
			),
		),
		template: tmpl,
		logger:   slog.Default(),
	}
}

// ServeHTTP handles GET /?id=&ancestor=&start=&limit=.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start, err := queryInt(r, "start")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	resp, err := h.browser.Page(ctx, service.PageRequest{
		ID:           q.Get("id"),
		AncestorID:   q.Get("ancestor"),
		Start:        start,
		Limit:        limit,
		LargestLimit: h.largestLimit,
	})
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to load page")
		return
	}

	el := resp.Element
	description, err := h.renderMarkdown([]byte(el.Element.Description))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render description", "id", el.Element.ID, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	embedded, err := json.Marshal(initialData{
		ElementResponse: ElementResponse{
			Ancestor:    el.Ancestor,
			Element:     el.Element,
			Descendants: el.Descendants,
			Root:        el.Root,
		},
		Largest: resp.Largest.Largest,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode initial data", "id", el.Element.ID, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:       el.Element.Label,
		ID:          el.Element.ID,
		Ancestor:    el.Ancestor,
		Description: template.HTML(description),
		Descendants: childRows(&el.Element, el.Descendants),
		Largest:     largestRows(&el.Element, el.Ancestor, resp.Largest.Largest),
		InitialData: template.JS(embedded),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute page template", "id", el.Element.ID, "error", err)
		return
	}
}

func (h *PageHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// childRows builds list rows. Each size is the child's size under parent.
func childRows(parent *taxonomy.Node, children []taxonomy.Node) []pageChild {
	return buildRows(parent, children, func(c *taxonomy.Node) int {
		idx, _ := c.ChainIndex(parent.ID)
		return idx
	})
}

// largestRows shows each size at the chain index the ranking used, so the
// list reads in descending order.
func largestRows(parent *taxonomy.Node, ancestorID string, ranked []taxonomy.Node) []pageChild {
	idx := taxonomy.LargestQuery(parent, ancestorID, 0).Index
	return buildRows(parent, ranked, func(*taxonomy.Node) int { return idx })
}

func buildRows(parent *taxonomy.Node, children []taxonomy.Node, sizeIndex func(*taxonomy.Node) int) []pageChild {
	rows := make([]pageChild, 0, len(children))
	for i := range children {
		c := &children[i]
		size, _ := c.SizeAt(sizeIndex(c))
		rows = append(rows, pageChild{
			ID:    c.ID,
			Label: c.Label,
			Size:  size,
			Href:  "/?" + url.Values{"id": {c.ID}, "ancestor": {parent.ID}}.Encode(),
		})
	}
	return rows
}
