package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/merge"
	"github.com/franz/carolcast/internal/playlist"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/util"
)

// Loader produces merged playlists
type Loader interface {
	GetMergedEpisodes(ctx context.Context, audioURL string) (*merge.Result, error)
	MissingSongs(episodes []*feed.Episode) []songbook.SongInfo
}

// PrefsSource supplies listener preferences for sorting and filtering
type PrefsSource interface {
	Snapshot() (*playlist.Prefs, error)
}

// DefaultReloadInterval is the minimum spacing between forced reloads
const DefaultReloadInterval = 10 * time.Second

// Server serves the merged playlist as JSON. The last merge is kept in
// memory only.
type Server struct {
	loader   Loader
	prefs    PrefsSource
	audioURL string
	limiter  *rate.Limiter

	mu      sync.RWMutex
	result  *merge.Result
	missing []songbook.SongInfo
}

// NewServer creates a server for one audio feed. prefs may be nil.
func NewServer(loader Loader, audioURL string, prefs PrefsSource) *Server {
	return &Server{
		loader:   loader,
		prefs:    prefs,
		audioURL: audioURL,
		limiter:  rate.NewLimiter(rate.Every(DefaultReloadInterval), 1),
	}
}

// WithReloadLimit replaces the reload throttle
func (s *Server) WithReloadLimit(l *rate.Limiter) *Server {
	s.limiter = l
	return s
}

// Router builds a gin engine with every route registered, running middleware
// after panic recovery
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware...)
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})
	r.UseRawPath = true // episode ids are URLs and arrive path-escaped

	r.GET("/health", s.health)
	s.RegisterRoutes(r.Group("/api"))
	return r
}

// RegisterRoutes mounts the playlist endpoints on rg
func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/episodes", s.listEpisodes)   // GET /api/episodes
	rg.GET("/episodes/:id", s.getEpisode) // GET /api/episodes/:id
	rg.GET("/missing", s.listMissing)     // GET /api/missing
	rg.POST("/reload", s.reload)          // POST /api/reload
}

// Reload fetches and merges the feeds, replacing the cached result only on
// success. The returned missing list belongs to the returned result.
func (s *Server) Reload(ctx context.Context) (*merge.Result, []songbook.SongInfo, error) {
	result, err := s.loader.GetMergedEpisodes(ctx, s.audioURL)
	if err != nil {
		util.ErrorLog("Reload failed: %v", err)
		return nil, nil, err
	}
	missing := s.loader.MissingSongs(result.Episodes)

	s.mu.Lock()
	s.result = result
	s.missing = missing
	s.mu.Unlock()

	util.InfoLog("Loaded %d episodes (%d songbook entries missing)", len(result.Episodes), len(missing))
	return result, missing, nil
}

// current returns the cached merge, loading it on first use
func (s *Server) current(ctx context.Context) (*merge.Result, []songbook.SongInfo, error) {
	s.mu.RLock()
	result, missing := s.result, s.missing
	s.mu.RUnlock()
	if result != nil {
		return result, missing, nil
	}
	return s.Reload(ctx)
}

func (s *Server) snapshot() *playlist.Prefs {
	if s.prefs == nil {
		return playlist.NewPrefs()
	}
	p, err := s.prefs.Snapshot()
	if err != nil {
		util.WarnLog("Failed to load preferences: %v", err)
		return playlist.NewPrefs()
	}
	return p
}

func (s *Server) health(c *gin.Context) {
	s.mu.RLock()
	loaded := s.result != nil
	var loadedAt time.Time
	if loaded {
		loadedAt = s.result.LoadedAt
	}
	s.mu.RUnlock()

	body := gin.H{"status": "ok", "loaded": loaded, "feed": s.audioURL}
	if loaded {
		body["loadedAt"] = loadedAt
	}
	c.JSON(http.StatusOK, body)
}
