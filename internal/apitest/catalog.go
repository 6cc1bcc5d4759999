package apitest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"flicksy/pkg/models"
)

func (s *Server) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No search query provided"})
		return
	}
	c.JSON(http.StatusOK, s.Store.Search(q))
}

func mediaKey(c *gin.Context, mt models.MediaType) (models.MediaKey, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return models.MediaKey{}, false
	}
	return models.MediaKey{TMDBID: id, MediaType: mt}, true
}

// cast serves {"cast": [...]} for movies and a bare array for shows.
func (s *Server) cast(mt models.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := mediaKey(c, mt)
		if !ok {
			return
		}
		cast, found := s.Store.castFor(key)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cast not found"})
			return
		}
		if cast == nil {
			cast = []models.CastMember{}
		}
		if mt == models.MediaTV {
			c.JSON(http.StatusOK, cast)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cast": cast})
	}
}

func (s *Server) platforms(mt models.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := mediaKey(c, mt)
		if !ok {
			return
		}
		offers, found := s.Store.offersFor(key)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Platform info not found for this region"})
			return
		}
		c.JSON(http.StatusOK, offers)
	}
}
