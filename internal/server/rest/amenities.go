package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

type amenityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type amenityResponse struct {
	ID          string    `json:"id"`
	VillaID     string    `json:"villa_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAmenityResponse(a *models.Amenity) amenityResponse {
	return amenityResponse{
		ID:          a.ID,
		VillaID:     a.VillaID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (s *Server) listAmenities(c *gin.Context) {
	items, err := s.amenities.ListByVilla(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]amenityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAmenityResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"amenities": out})
}

func (s *Server) getAmenity(c *gin.Context) {
	amenity, err := s.amenities.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponse(amenity))
}

func (s *Server) createAmenity(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	amenity, err := s.amenities.Create(c.Request.Context(), &models.Amenity{
		VillaID:     c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAmenityResponse(amenity))
}

func (s *Server) updateAmenity(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	amenity := &models.Amenity{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.amenities.Update(c.Request.Context(), amenity); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponse(amenity))
}

func (s *Server) deleteAmenity(c *gin.Context) {
	if err := s.amenities.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
