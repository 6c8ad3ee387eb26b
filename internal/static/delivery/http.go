package delivery

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/MisterMaks/rdrt-client/internal/logger"
	"go.uber.org/zap"
)

// Used constants.
const (
	ContentTypeKey  string = "Content-Type"
	CacheControlKey string = "Cache-Control"
	TextPlainKey    string = "text/plain; charset=utf-8"
	NoCacheKey      string = "no-cache"

	IndexFile string = "index.html"
	HealthOK  string = "OK"

	DistDirKey string = "dist_dir"
	PathKey    string = "path"
)

var ErrNoIndex = errors.New("index.html not found in dist dir")

// StaticHandler serves compiled application bundle with client-side routing fallback.
type StaticHandler struct {
	DistDir    string
	fileSystem http.FileSystem
	fileServer http.Handler
}

// NewStaticHandler creates *StaticHandler. distDir must contain index.html.
func NewStaticHandler(distDir string) (*StaticHandler, error) {
	info, err := os.Stat(filepath.Join(distDir, IndexFile))
	if err != nil {
		return nil, errors.Join(ErrNoIndex, err)
	}
	if info.IsDir() {
		return nil, ErrNoIndex
	}

	fileSystem := http.Dir(distDir)
	return &StaticHandler{
		DistDir:    distDir,
		fileSystem: fileSystem,
		fileServer: http.FileServer(fileSystem),
	}, nil
}

// Health reports liveness.
func (sh *StaticHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentTypeKey, TextPlainKey)
	_, _ = io.WriteString(w, HealthOK)
}

// ServeSPA serves existing files as is and index.html for every other path.
func (sh *StaticHandler) ServeSPA(w http.ResponseWriter, r *http.Request) {
	handlerLogger := logger.GetContextLogger(r.Context())

	name := path.Clean("/" + r.URL.Path)
	if name != "/" && sh.isFile(name) {
		sh.fileServer.ServeHTTP(w, r)
		return
	}

	handlerLogger.Debug("Serving index.html", zap.String(PathKey, r.URL.Path))
	sh.serveIndex(w, r)
}

func (sh *StaticHandler) isFile(name string) bool {
	f, err := sh.fileSystem.Open(name)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func (sh *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := sh.fileSystem.Open("/" + IndexFile)
	if err != nil {
		logger.GetContextLogger(r.Context()).Error("Failed to open index.html",
			zap.String(DistDirKey, sh.DistDir),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set(CacheControlKey, NoCacheKey)
	http.ServeContent(w, r, IndexFile, info.ModTime(), f)
}
