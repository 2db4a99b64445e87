package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/importer"
	"github.com/Domenick1991/airticket/internal/service/manager"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagerHandler struct {
	service  manager.ManagerUseCase
	importer *importer.CSVImporter
}

type fieldRuleResponse struct {
	Field       string   `json:"field"`
	Type        string   `json:"type"`
	Constraints []string `json:"constraints"`
}

func NewManagerHandler(service manager.ManagerUseCase, csvImporter *importer.CSVImporter) *ManagerHandler {
	return &ManagerHandler{service: service, importer: csvImporter}
}

func (h *ManagerHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.filterBookings)
	router.GET("/flights/schema", h.flightSchema)
	router.POST("/flights/import", h.importFlights)
}

func (h *ManagerHandler) filterBookings(c *gin.Context) {
	filter := manager.BookingFilter{
		FlightCode:  c.Query("flight_code"),
		FromCountry: c.Query("from_country"),
		ToCountry:   c.Query("to_country"),
		FromAirport: c.Query("from_airport"),
		ToAirport:   c.Query("to_airport"),
	}

	if id := c.Query("passenger_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger_id"})
			return
		}
		filter.PassengerID = &parsed
	}
	if class := c.Query("class"); class != "" {
		parsed, err := domain.ParseSeatClass(class)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Class = &parsed
	}
	if price := c.Query("min_price"); price != "" {
		cents, err := domain.ParseCents(price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.MinCents = &cents
	}
	if price := c.Query("max_price"); price != "" {
		cents, err := domain.ParseCents(price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.MaxCents = &cents
	}
	if day := c.Query("departure_date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "departure_date must be YYYY-MM-DD"})
			return
		}
		filter.DepartureDay = &parsed
	}

	views, err := h.service.FilterBookings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ManagerHandler) flightSchema(c *gin.Context) {
	rules := h.service.DescribeFlightModel()

	response := make([]fieldRuleResponse, 0, len(rules))
	for _, rule := range rules {
		constraints := make([]string, 0, len(rule.Constraints))
		for _, constraint := range rule.Constraints {
			constraints = append(constraints, constraint.Describe())
		}
		response = append(response, fieldRuleResponse{
			Field:       rule.Field,
			Type:        rule.Type,
			Constraints: constraints,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *ManagerHandler) importFlights(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
