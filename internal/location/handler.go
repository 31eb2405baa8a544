package location

import (
	"net/http"
	"strconv"

	"github.com/ergomap/geocoder/common"
	"github.com/ergomap/geocoder/internal/dto"
	"github.com/ergomap/geocoder/middleware"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

var _ HandlerInterface = (*Handler)(nil)

// Create handles POST /locations. Returns 201 with the stored location;
// whether a geocode job was queued is visible through the geocoded flag.
func (h *Handler) Create(c *gin.Context) {
	var req dto.LocationCreateDTO

	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /locations/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id < 1 {
		c.Error(common.Errf(http.StatusBadRequest, "invalid ID"))
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateAddress handles PUT /locations/:id/address.
func (h *Handler) UpdateAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id < 1 {
		c.Error(common.Errf(http.StatusBadRequest, "invalid ID"))
		return
	}

	var req dto.AddressUpdateDTO
	if !middleware.Bind(c, &req) {
		return
	}

	resp, err := h.service.UpdateAddress(c.Request.Context(), uint(id), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
