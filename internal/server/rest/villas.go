package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wemurs1/RoyalVilla/internal/server/models"
	villasrepo "github.com/wemurs1/RoyalVilla/internal/server/repositories/villas"
)

type villaRequest struct {
	Name      string  `json:"name" binding:"required"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate" binding:"required,gt=0"`
	Sqft      int     `json:"sqft" binding:"required,gt=0"`
	Occupancy int     `json:"occupancy" binding:"required,gt=0"`
}

type villaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	Rate      float64   `json:"rate"`
	Sqft      int       `json:"sqft"`
	Occupancy int       `json:"occupancy"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toVillaResponse(v *models.Villa) villaResponse {
	return villaResponse{
		ID:        v.ID,
		Name:      v.Name,
		Details:   v.Details,
		Rate:      v.Rate,
		Sqft:      v.Sqft,
		Occupancy: v.Occupancy,
		ImageURL:  v.ImageURL,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func (s *Server) listVillas(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	items, total, err := s.villas.List(c.Request.Context(), villasrepo.ListFilter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]villaResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVillaResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{"villas": out, "total": total, "page": page})
}

func (s *Server) getVilla(c *gin.Context) {
	villa, err := s.villas.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVillaResponse(villa))
}

func (s *Server) createVilla(c *gin.Context) {
	var req villaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	villa, err := s.villas.Create(c.Request.Context(), &models.Villa{
		Name:      req.Name,
		Details:   req.Details,
		Rate:      req.Rate,
		Sqft:      req.Sqft,
		Occupancy: req.Occupancy,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVillaResponse(villa))
}

func (s *Server) updateVilla(c *gin.Context) {
	var req villaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	villa := &models.Villa{
		ID:        c.Param("id"),
		Name:      req.Name,
		Details:   req.Details,
		Rate:      req.Rate,
		Sqft:      req.Sqft,
		Occupancy: req.Occupancy,
	}
	if err := s.villas.Update(c.Request.Context(), villa); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVillaResponse(villa))
}

func (s *Server) deleteVilla(c *gin.Context) {
	if err := s.villas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// villaImageUploadURL hands the client a presigned PUT URL; the client
// uploads directly to object storage and then confirms the key.
func (s *Server) villaImageUploadURL(c *gin.Context) {
	key, url, err := s.images.UploadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": url})
}

func (s *Server) confirmVillaImage(c *gin.Context) {
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	url, err := s.images.ConfirmUpload(c.Request.Context(), c.Param("id"), req.Key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
