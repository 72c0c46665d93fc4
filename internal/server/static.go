package server

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"eurlexscraper/pkg/logger"
)

//go:embed public/*.html
var embeddedPages embed.FS

// staticFS returns dir when it exists and the built-in pages otherwise
func staticFS(dir string, log logger.Logger) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return noListingFS{os.DirFS(dir)}
		}
		log.WarnWithFields("Static directory not found, serving built-in pages", map[string]interface{}{
			"static_dir": dir,
		})
	}

	pages, err := fs.Sub(embeddedPages, "public")
	if err != nil {
		// public is a literal embed path
		panic(err)
	}
	return noListingFS{pages}
}

// noListingFS hides directories that have no index.html so the file
// server answers 404 instead of rendering a listing
type noListingFS struct {
	fs.FS
}

func (n noListingFS) Open(name string) (fs.File, error) {
	f, err := n.FS.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		if _, err := fs.Stat(n.FS, path.Join(name, "index.html")); err != nil {
			f.Close()
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
	}
	return f, nil
}
