package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	PassengerID string `json:"passenger_id"`
	FlightCode  string `json:"flight_code"`
	Class       string `json:"class"`
	SeatCount   int    `json:"seat_count"`
}

type modifyBookingRequest struct {
	NewClass     *string `json:"new_class"`
	NewSeatCount *int    `json:"new_seat_count"`
}

type bookingResponse struct {
	ID          string `json:"id"`
	PassengerID string `json:"passenger_id"`
	FlightCode  string `json:"flight_code"`
	Class       string `json:"class"`
	SeatCount   int    `json:"seat_count"`
	TotalCents  int64  `json:"total_cents"`
	Total       string `json:"total"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
}

func newBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID.String(),
		PassengerID: b.PassengerID.String(),
		FlightCode:  b.FlightCode,
		Class:       string(b.SeatClass),
		SeatCount:   b.SeatCount,
		TotalCents:  b.TotalCents,
		Total:       domain.FormatCents(b.TotalCents),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		Status:      string(b.Status),
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.PATCH("/:id", h.modify)
	router.DELETE("/:id", h.cancel)
	router.GET("/", h.list)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passengerID, err := uuid.Parse(req.PassengerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger_id"})
		return
	}
	class, err := domain.ParseSeatClass(req.Class)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Book(c.Request.Context(), booking.BookRequest{
		PassengerID: passengerID,
		FlightCode:  req.FlightCode,
		Class:       class,
		SeatCount:   req.SeatCount,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newBookingResponse(*created))
}

func (h *BookingHandler) modify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req modifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modReq := booking.ModifyRequest{BookingID: id, NewSeatCount: req.NewSeatCount}
	if req.NewClass != nil {
		class, err := domain.ParseSeatClass(*req.NewClass)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		modReq.NewClass = &class
	}

	updated, err := h.service.Modify(c.Request.Context(), modReq)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(*updated))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	ok, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrBookingNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (h *BookingHandler) list(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Query("passenger_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passenger_id query parameter is required"})
		return
	}

	bookings, err := h.service.GetMyBookings(c.Request.Context(), passengerID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, newBookingResponse(b))
	}
	c.JSON(http.StatusOK, responses)
}
