package api

import (
	"net/http"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/Domenick1991/airticket/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PassengerHandler struct {
	repo repository.PassengerRepository
}

type createPassengerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
}

func NewPassengerHandler(repo repository.PassengerRepository) *PassengerHandler {
	return &PassengerHandler{repo: repo}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger := domain.Passenger{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		NationalID: req.NationalID,
	}
	if errs := validation.ValidatePassenger(passenger); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.repo.Save(c.Request.Context(), passenger); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHandler) list(c *gin.Context) {
	passengers, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, passengers)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger id"})
		return
	}

	passenger, ok, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrPassengerNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, passenger)
}
