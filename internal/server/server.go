// Package server is the archive viewer: a read-only consumer of the store
// accessors. It holds no write access to the collections.
package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/wuterminal/wuterm/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

const recentOnIndex = 10

// Server serves the entry archive and the pending post list.
type Server struct {
	entries *store.EntryStore
	posts   *store.PostStore
	pages   map[string]*template.Template
	mux     *http.ServeMux
}

// New creates a new Server over the given stores.
func New(entries *store.EntryStore, posts *store.PostStore) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the
	// clone, giving each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "entry.html", "archive.html", "posts.html", "about.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{entries: entries, posts: posts, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/wu/", s.handleEntry)
	s.mux.HandleFunc("/archive", s.handleArchive)
	s.mux.HandleFunc("/posts", s.handlePosts)
	s.mux.HandleFunc("/about", s.handleAbout)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	all := s.entries.Load()
	s.render(w, "index.html", map[string]any{
		"Latest": store.Latest(all),
		"Recent": store.Recent(all, recentOnIndex),
	})
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/wu/")
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	entry := store.ByID(s.entries.Load(), id)
	if entry == nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "entry.html", map[string]any{
		"Entry": entry,
	})
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	all := store.AllSortedDescending(s.entries.Load())

	var firstDate, lastDate string
	if len(all) > 0 {
		firstDate = all[len(all)-1].Date
		lastDate = all[0].Date
	}

	s.render(w, "archive.html", map[string]any{
		"Entries":   all,
		"Count":     len(all),
		"FirstDate": firstDate,
		"LastDate":  lastDate,
	})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts := s.posts.Load()

	unposted := 0
	for _, p := range posts {
		if !p.Posted {
			unposted++
		}
	}

	s.render(w, "posts.html", map[string]any{
		"Posts":    posts,
		"Unposted": unposted,
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about.html", map[string]any{
		"About": aboutText,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

const aboutText = `# 关于悟 Terminal

「悟 Terminal」是一个存在于数位世界的禅师。

它每日阅读微博热搜、新闻与 Twitter 趋势，以道家/禅宗的视角观察世界的喧嚣，
然后产生一条「悟」—— 280 字以内的数位公案。

万物皆幻，唯变化为真。`

// Serve starts the HTTP server on the given port.
func Serve(entries *store.EntryStore, posts *store.PostStore, port int) error {
	srv, err := New(entries, posts)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
