package apitest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flicksy/pkg/models"
)

func (s *Server) registerWatchlist(rg *gin.RouterGroup) {
	rg.GET("", s.listWatchlist)
	rg.POST("/add", s.addToWatchlist)
	rg.POST("/remove", s.removeFromWatchlist)
}

type watchlistReq struct {
	MediaType models.MediaType `json:"media_type"`
	TMDBID    int              `json:"tmdb_id"`
}

func (s *Server) listWatchlist(c *gin.Context) {
	u := currentUser(c)
	items, err := s.Store.Watchlist(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watchlist"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) addToWatchlist(c *gin.Context) {
	u := currentUser(c)
	var req watchlistReq
	if err := c.ShouldBindJSON(&req); err != nil || req.MediaType == "" || req.TMDBID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing media type or ID"})
		return
	}
	added, found, err := s.Store.addToWatchlist(c.Request.Context(), u, models.MediaKey{TMDBID: req.TMDBID, MediaType: req.MediaType})
	switch {
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while adding the item"})
	case added:
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Added to watchlist"})
	case found:
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Item already in watchlist"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not find details for this item"})
	}
}

func (s *Server) removeFromWatchlist(c *gin.Context) {
	u := currentUser(c)
	var req watchlistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	removed, err := s.Store.removeFromWatchlist(c.Request.Context(), u, models.MediaKey{TMDBID: req.TMDBID, MediaType: req.MediaType})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while removing the item"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from watchlist"})
}
