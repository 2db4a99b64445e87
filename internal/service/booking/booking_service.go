package booking

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/kafka"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Book(ctx context.Context, req BookRequest) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (bool, error)
	Modify(ctx context.Context, req ModifyRequest) (*domain.Booking, error)
	GetMyBookings(ctx context.Context, passengerID uuid.UUID) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

// BookingService is the only component allowed to change flight seat
// counters. A flight aggregate owns its bookings, so every operation lands on
// disk as a single flight upsert and counters can never drift from the
// bookings they back.
type BookingService struct {
	flights            repository.FlightRepository
	passengers         repository.PassengerRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type BookRequest struct {
	PassengerID uuid.UUID        `json:"passenger_id"`
	FlightCode  string           `json:"flight_code"`
	Class       domain.SeatClass `json:"class"`
	SeatCount   int              `json:"seat_count"`
}

type ModifyRequest struct {
	BookingID    uuid.UUID         `json:"booking_id"`
	NewClass     *domain.SeatClass `json:"new_class,omitempty"`
	NewSeatCount *int              `json:"new_seat_count,omitempty"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithCache lets the service drop the cached flight list after a write.
func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

// WithClock overrides the time source used for departure guards and booking
// timestamps.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		flights:      flights,
		passengers:   passengers,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Book(ctx context.Context, req BookRequest) (*domain.Booking, error) {
	if req.SeatCount <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}

	flight, ok, err := s.flights.GetByCode(ctx, req.FlightCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrFlightNotFound
	}

	passenger, ok, err := s.passengers.GetByID(ctx, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPassengerNotFound
	}

	if flight.Departed(s.now()) {
		return nil, domain.ErrFlightDeparted
	}

	available := flight.Available(req.Class)
	if available < req.SeatCount {
		return nil, domain.ErrNotEnoughSeats
	}
	flight.SetAvailable(req.Class, available-req.SeatCount)

	booking := domain.Booking{
		ID:          uuid.New(),
		PassengerID: passenger.ID,
		FlightCode:  flight.Code,
		SeatClass:   req.Class,
		SeatCount:   req.SeatCount,
		TotalCents:  flight.PriceCents(req.Class) * int64(req.SeatCount),
		CreatedAt:   s.now().UTC(),
		Status:      domain.BookingStatusConfirmed,
	}
	flight.Bookings = append(flight.Bookings, booking)

	if err := s.flights.Save(ctx, *flight); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_created", booking, passenger.Email)
	return &booking, nil
}

// Cancel releases the booking's seats back to its flight. A missing booking
// is a no-op false, a cancelled one an idempotent true.
func (s *BookingService) Cancel(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	flight, idx, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if flight == nil {
		return false, nil
	}

	booking := &flight.Bookings[idx]
	if booking.Status == domain.BookingStatusCancelled {
		return true, nil
	}
	if flight.Departed(s.now()) {
		return false, domain.ErrFlightDeparted
	}

	flight.SetAvailable(booking.SeatClass, flight.Available(booking.SeatClass)+booking.SeatCount)
	booking.Status = domain.BookingStatusCancelled

	if err := s.flights.Save(ctx, *flight); err != nil {
		return false, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_cancelled", *booking, s.passengerEmail(ctx, booking.PassengerID))
	return true, nil
}

// Modify defaults unset fields to the booking's current values. It first
// returns the current class/count to the counters, then withdraws the new
// ones; on insufficient capacity the release is compensated and nothing is
// persisted, so a failed call leaves the flight exactly as it was.
func (s *BookingService) Modify(ctx context.Context, req ModifyRequest) (*domain.Booking, error) {
	flight, idx, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, domain.ErrBookingNotFound
	}

	booking := &flight.Bookings[idx]
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrBookingCancelled
	}
	if flight.Departed(s.now()) {
		return nil, domain.ErrFlightDeparted
	}

	newClass := booking.SeatClass
	if req.NewClass != nil {
		newClass = *req.NewClass
	}
	newCount := booking.SeatCount
	if req.NewSeatCount != nil {
		newCount = *req.NewSeatCount
	}
	if newCount <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}

	currentClass := booking.SeatClass
	currentCount := booking.SeatCount

	flight.SetAvailable(currentClass, flight.Available(currentClass)+currentCount)

	available := flight.Available(newClass)
	if available < newCount {
		flight.SetAvailable(currentClass, flight.Available(currentClass)-currentCount)
		return nil, domain.ErrNotEnoughSeats
	}
	flight.SetAvailable(newClass, available-newCount)

	booking.SeatClass = newClass
	booking.SeatCount = newCount
	booking.TotalCents = flight.PriceCents(newClass) * int64(newCount)

	if err := s.flights.Save(ctx, *flight); err != nil {
		return nil, err
	}

	updated := *booking
	s.invalidate(ctx)
	s.publish(ctx, "booking_modified", updated, s.passengerEmail(ctx, updated.PassengerID))
	return &updated, nil
}

// GetMyBookings returns the passenger's bookings, most recent first.
func (s *BookingService) GetMyBookings(ctx context.Context, passengerID uuid.UUID) ([]domain.Booking, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0)
	for i := range flights {
		for _, b := range flights[i].Bookings {
			if b.PassengerID == passengerID {
				bookings = append(bookings, b)
			}
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// findBooking locates the flight owning bookingID. A nil flight means the
// booking does not exist.
func (s *BookingService) findBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Flight, int, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i := range flights {
		for j := range flights[i].Bookings {
			if flights[i].Bookings[j].ID == bookingID {
				return &flights[i], j, nil
			}
		}
	}
	return nil, 0, nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func (s *BookingService) passengerEmail(ctx context.Context, id uuid.UUID) string {
	if s.producer == nil {
		return ""
	}
	passenger, ok, err := s.passengers.GetByID(ctx, id)
	if err != nil || !ok {
		return ""
	}
	return passenger.Email
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID.String(),
		FlightCode:  booking.FlightCode,
		PassengerID: booking.PassengerID.String(),
		Email:       email,
		SeatClass:   string(booking.SeatClass),
		SeatCount:   booking.SeatCount,
		TotalCents:  booking.TotalCents,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.BookingID, event); err != nil {
		log.Printf("WARNING: publish %s event for booking %s: %v", eventType, event.BookingID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.BookingID, event); err != nil {
			log.Printf("WARNING: publish %s notification for booking %s: %v", eventType, event.BookingID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
