package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/playlist"
	"github.com/franz/carolcast/internal/reconcile"
	"github.com/franz/carolcast/internal/songbook"
)

// episodeView is an episode plus the listener's preferences for it
type episodeView struct {
	*feed.Episode
	Plays           int       `json:"plays"`
	Confidence      int       `json:"confidence"`
	ConfidenceTitle string    `json:"confidenceTitle"`
	Favorite        bool      `json:"favorite"`
	Bookmarks       []float64 `json:"bookmarks,omitempty"`
}

func viewOf(ep *feed.Episode, prefs *playlist.Prefs) episodeView {
	conf := prefs.ConfidenceFor(ep.AudioURL)
	return episodeView{
		Episode:         ep,
		Plays:           prefs.PlayCount(ep.AudioURL),
		Confidence:      conf,
		ConfidenceTitle: songbook.ConfidenceLevelFor(conf).Title,
		Favorite:        prefs.IsFavorite(ep.AudioURL),
		Bookmarks:       prefs.Bookmarks[ep.AudioURL],
	}
}

func (s *Server) listEpisodes(c *gin.Context) {
	mode, err := playlist.ParseSortMode(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// choreo=front,back OR choreo=front&choreo=back
	choreo, ok := playlist.ParseChoreoFilters(strings.Join(c.QueryArray("choreo"), ","))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "choreo must be any, front, back or notes"})
		return
	}

	result, _, err := s.current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	prefs := s.snapshot()
	f := playlist.Filter{
		Search:        c.Query("q"),
		Choreo:        choreo,
		FavoritesOnly: parseBool(c.Query("favorites")),
	}
	episodes := playlist.View(result.Episodes, f, mode, prefs)

	items := make([]episodeView, len(episodes))
	for i, ep := range episodes {
		items[i] = viewOf(ep, prefs)
	}

	c.JSON(http.StatusOK, gin.H{
		"podcastTitle": result.PodcastTitle,
		"podcastImage": result.PodcastImage,
		"sort":         mode,
		"total":        len(items),
		"items":        items,
	})
}

func (s *Server) getEpisode(c *gin.Context) {
	id := c.Param("id")

	result, _, err := s.current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ep, ok := playlist.Find(result.Episodes, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(ep, s.snapshot()))
}

type missingView struct {
	songbook.SongInfo
	Closest   string  `json:"closest,omitempty"`
	Closeness float64 `json:"closeness,omitempty"`
}

func (s *Server) listMissing(c *gin.Context) {
	result, missing, err := s.current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	items := make([]missingView, len(missing))
	for i, song := range missing {
		title, score := reconcile.ClosestEpisode(song, result.Episodes)
		items[i] = missingView{SongInfo: song, Closest: title, Closeness: score}
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (s *Server) reload(c *gin.Context) {
	if !s.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "reload throttled, try again shortly"})
		return
	}

	result, _, err := s.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"episodes":     len(result.Episodes),
		"choreoGroups": result.ChoreoGroups,
		"loadedAt":     result.LoadedAt,
	})
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
