package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/:code", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	params := flights.SearchParams{
		FromCountry: c.Query("from_country"),
		ToCountry:   c.Query("to_country"),
		FromAirport: c.Query("from_airport"),
		ToAirport:   c.Query("to_airport"),
	}

	if day := c.Query("departure_date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "departure_date must be YYYY-MM-DD"})
			return
		}
		params.DepartureDay = &parsed
	}
	if class := c.Query("class"); class != "" {
		parsed, err := domain.ParseSeatClass(class)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.Class = &parsed
	}
	if price := c.Query("max_price"); price != "" {
		cents, err := domain.ParseCents(price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.MaxCents = &cents
	}

	results, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}
