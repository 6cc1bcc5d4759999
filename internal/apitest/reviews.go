package apitest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flicksy/pkg/models"
)

type reviewReq struct {
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

func (s *Server) review(mt models.MediaType) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		key, ok := mediaKey(c, mt)
		if !ok {
			return
		}
		var req reviewReq
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ReviewText) == "" || req.Rating == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Review text and a rating are required."})
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}
		if _, found := s.Store.title(key); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Could not find movie details to save."})
			return
		}
		rv, created, err := s.Store.addReview(c.Request.Context(), u, key, req.ReviewText, req.Rating)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save review."})
			return
		}
		if !created {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this movie."})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Review submitted successfully!", "review": rv})
	}
}
