package booking

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/kafka"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByCode(ctx context.Context, code string) (*domain.Flight, bool, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Flight), args.Bool(1), args.Error(2)
}

func (m *MockFlightRepository) Save(ctx context.Context, flight domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Passenger, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Passenger), args.Bool(1), args.Error(2)
}

func (m *MockPassengerRepository) Save(ctx context.Context, passenger domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *MockPassengerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var fixedNow = time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC)

func testFlight() domain.Flight {
	return domain.Flight{
		Code:               "RJ101",
		DepartureCountry:   "Jordan",
		DestinationCountry: "UAE",
		DepartureAirport:   "AMM",
		ArrivalAirport:     "DXB",
		DepartureUTC:       fixedNow.Add(7 * 24 * time.Hour),
		ArrivalUTC:         fixedNow.Add(7*24*time.Hour + 3*time.Hour),
		EconomyCents:       18000,
		BusinessCents:      54000,
		FirstCents:         98000,
		EconomySeats:       120,
		BusinessSeats:      18,
		FirstSeats:         8,
		EconomyCapacity:    120,
		BusinessCapacity:   18,
		FirstCapacity:      8,
		Bookings:           []domain.Booking{},
	}
}

func newTestService(flights repository.FlightRepository, passengers repository.PassengerRepository, opts ...BookingServiceOption) *BookingService {
	opts = append([]BookingServiceOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewBookingService(flights, passengers, nil, "", opts...)
}

func TestBookingService_Book_Success(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	passenger := domain.Passenger{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}

	var saved domain.Flight
	mockFlights.On("GetByCode", ctx, "RJ101").Return(&flight, true, nil).Once()
	mockPassengers.On("GetByID", ctx, passenger.ID).Return(&passenger, true, nil).Once()
	mockFlights.On("Save", ctx, mock.AnythingOfType("domain.Flight")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Flight) }).
		Return(nil).Once()

	created, err := service.Book(ctx, BookRequest{
		PassengerID: passenger.ID,
		FlightCode:  "RJ101",
		Class:       domain.SeatClassEconomy,
		SeatCount:   2,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.BookingStatusConfirmed, created.Status)
	assert.Equal(t, int64(36000), created.TotalCents)
	assert.Equal(t, 2, created.SeatCount)
	assert.Equal(t, fixedNow, created.CreatedAt)

	assert.Equal(t, 118, saved.EconomySeats)
	require.Len(t, saved.Bookings, 1)
	assert.Equal(t, created.ID, saved.Bookings[0].ID)

	mockFlights.AssertExpectations(t)
	mockPassengers.AssertExpectations(t)
}

func TestBookingService_Book_PublishesEvents(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	producer := &MockProducer{}
	service := NewBookingService(mockFlights, mockPassengers, producer, "bookings",
		WithClock(func() time.Time { return fixedNow }),
		WithNotificationsTopic("notifications"),
	)

	ctx := context.Background()
	flight := testFlight()
	passenger := domain.Passenger{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}

	mockFlights.On("GetByCode", ctx, "RJ101").Return(&flight, true, nil).Once()
	mockPassengers.On("GetByID", ctx, passenger.ID).Return(&passenger, true, nil)
	mockFlights.On("Save", ctx, mock.AnythingOfType("domain.Flight")).Return(nil).Once()

	isCreatedEvent := mock.MatchedBy(func(value interface{}) bool {
		event, ok := value.(kafka.BookingEvent)
		return ok && event.Type == "booking_created" &&
			event.FlightCode == "RJ101" &&
			event.Email == passenger.Email &&
			event.TotalCents == 18000
	})
	producer.On("Publish", ctx, "bookings", mock.AnythingOfType("string"), isCreatedEvent).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", mock.AnythingOfType("string"), isCreatedEvent).Return(nil).Once()

	_, err := service.Book(ctx, BookRequest{
		PassengerID: passenger.ID,
		FlightCode:  "RJ101",
		Class:       domain.SeatClassEconomy,
		SeatCount:   1,
	})

	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestBookingService_Book_InvalidSeatCount(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	for _, count := range []int{0, -3} {
		_, err := service.Book(context.Background(), BookRequest{
			PassengerID: uuid.New(),
			FlightCode:  "RJ101",
			Class:       domain.SeatClassEconomy,
			SeatCount:   count,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSeatCount)
	}

	// Validation failures must not touch the stores.
	mockFlights.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Book_FlightNotFound(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	mockFlights.On("GetByCode", ctx, "XX999").Return(nil, false, nil).Once()

	_, err := service.Book(ctx, BookRequest{
		PassengerID: uuid.New(),
		FlightCode:  "XX999",
		Class:       domain.SeatClassEconomy,
		SeatCount:   1,
	})

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	mockFlights.AssertExpectations(t)
}

func TestBookingService_Book_PassengerNotFound(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	passengerID := uuid.New()
	mockFlights.On("GetByCode", ctx, "RJ101").Return(&flight, true, nil).Once()
	mockPassengers.On("GetByID", ctx, passengerID).Return(nil, false, nil).Once()

	_, err := service.Book(ctx, BookRequest{
		PassengerID: passengerID,
		FlightCode:  "RJ101",
		Class:       domain.SeatClassEconomy,
		SeatCount:   1,
	})

	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Book_DepartedFlight(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	flight.DepartureUTC = fixedNow.Add(-time.Hour)
	passenger := domain.Passenger{ID: uuid.New(), Email: "test@example.com"}

	mockFlights.On("GetByCode", ctx, "RJ101").Return(&flight, true, nil).Once()
	mockPassengers.On("GetByID", ctx, passenger.ID).Return(&passenger, true, nil).Once()

	_, err := service.Book(ctx, BookRequest{
		PassengerID: passenger.ID,
		FlightCode:  "RJ101",
		Class:       domain.SeatClassEconomy,
		SeatCount:   1,
	})

	assert.ErrorIs(t, err, domain.ErrFlightDeparted)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Book_NotEnoughSeats(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	passenger := domain.Passenger{ID: uuid.New(), Email: "test@example.com"}

	mockFlights.On("GetByCode", ctx, "RJ101").Return(&flight, true, nil).Once()
	mockPassengers.On("GetByID", ctx, passenger.ID).Return(&passenger, true, nil).Once()

	_, err := service.Book(ctx, BookRequest{
		PassengerID: passenger.ID,
		FlightCode:  "RJ101",
		Class:       domain.SeatClassFirst,
		SeatCount:   9,
	})

	assert.ErrorIs(t, err, domain.ErrNotEnoughSeats)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Book_RepositoryError(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	storeErr := errors.New("decode flights.json: unexpected end of JSON input")
	mockFlights.On("GetByCode", ctx, "RJ101").Return(nil, false, storeErr).Once()

	_, err := service.Book(ctx, BookRequest{
		PassengerID: uuid.New(),
		FlightCode:  "RJ101",
		Class:       domain.SeatClassEconomy,
		SeatCount:   1,
	})

	assert.ErrorIs(t, err, storeErr)
}

func TestBookingService_Cancel_MissingBookingIsNoOp(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	mockFlights.On("List", ctx).Return([]domain.Flight{testFlight()}, nil).Once()

	ok, err := service.Cancel(ctx, uuid.New())

	assert.NoError(t, err)
	assert.False(t, ok)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_AlreadyCancelledIsIdempotent(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	bookingID := uuid.New()
	flight.Bookings = []domain.Booking{{
		ID:          bookingID,
		PassengerID: uuid.New(),
		FlightCode:  flight.Code,
		SeatClass:   domain.SeatClassEconomy,
		SeatCount:   2,
		Status:      domain.BookingStatusCancelled,
	}}
	mockFlights.On("List", ctx).Return([]domain.Flight{flight}, nil).Once()

	ok, err := service.Cancel(ctx, bookingID)

	assert.NoError(t, err)
	assert.True(t, ok)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_RestoresSeats(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	flight.EconomySeats = 118
	bookingID := uuid.New()
	flight.Bookings = []domain.Booking{{
		ID:          bookingID,
		PassengerID: uuid.New(),
		FlightCode:  flight.Code,
		SeatClass:   domain.SeatClassEconomy,
		SeatCount:   2,
		TotalCents:  36000,
		Status:      domain.BookingStatusConfirmed,
	}}

	var saved domain.Flight
	mockFlights.On("List", ctx).Return([]domain.Flight{flight}, nil).Once()
	mockFlights.On("Save", ctx, mock.AnythingOfType("domain.Flight")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Flight) }).
		Return(nil).Once()

	ok, err := service.Cancel(ctx, bookingID)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 120, saved.EconomySeats)
	assert.Equal(t, domain.BookingStatusCancelled, saved.Bookings[0].Status)
	mockFlights.AssertExpectations(t)
}

func TestBookingService_Cancel_DepartedFlight(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	flight.DepartureUTC = fixedNow.Add(-time.Hour)
	bookingID := uuid.New()
	flight.Bookings = []domain.Booking{{
		ID:        bookingID,
		SeatClass: domain.SeatClassEconomy,
		SeatCount: 1,
		Status:    domain.BookingStatusConfirmed,
	}}
	mockFlights.On("List", ctx).Return([]domain.Flight{flight}, nil).Once()

	ok, err := service.Cancel(ctx, bookingID)

	assert.ErrorIs(t, err, domain.ErrFlightDeparted)
	assert.False(t, ok)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Modify_NotFound(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	mockFlights.On("List", ctx).Return([]domain.Flight{}, nil).Once()

	_, err := service.Modify(ctx, ModifyRequest{BookingID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_Modify_CancelledBooking(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	bookingID := uuid.New()
	flight.Bookings = []domain.Booking{{
		ID:        bookingID,
		SeatClass: domain.SeatClassEconomy,
		SeatCount: 1,
		Status:    domain.BookingStatusCancelled,
	}}
	mockFlights.On("List", ctx).Return([]domain.Flight{flight}, nil).Once()

	_, err := service.Modify(ctx, ModifyRequest{BookingID: bookingID})

	assert.ErrorIs(t, err, domain.ErrBookingCancelled)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Modify_InsufficientCapacityCompensates(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	flight.EconomySeats = 118
	bookingID := uuid.New()
	original := domain.Booking{
		ID:          bookingID,
		PassengerID: uuid.New(),
		FlightCode:  flight.Code,
		SeatClass:   domain.SeatClassEconomy,
		SeatCount:   2,
		TotalCents:  36000,
		Status:      domain.BookingStatusConfirmed,
	}
	flight.Bookings = []domain.Booking{original}

	flightsList := []domain.Flight{flight}
	mockFlights.On("List", ctx).Return(flightsList, nil).Once()

	newClass := domain.SeatClassFirst
	newCount := 50
	_, err := service.Modify(ctx, ModifyRequest{
		BookingID:    bookingID,
		NewClass:     &newClass,
		NewSeatCount: &newCount,
	})

	assert.ErrorIs(t, err, domain.ErrNotEnoughSeats)
	mockFlights.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	// The compensation must leave counters and the booking exactly as before.
	assert.Equal(t, 118, flightsList[0].EconomySeats)
	assert.Equal(t, 8, flightsList[0].FirstSeats)
	assert.Equal(t, original, flightsList[0].Bookings[0])
}

func TestBookingService_Modify_ChangesClassAndPrice(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	flight := testFlight()
	flight.EconomySeats = 118
	bookingID := uuid.New()
	flight.Bookings = []domain.Booking{{
		ID:          bookingID,
		PassengerID: uuid.New(),
		FlightCode:  flight.Code,
		SeatClass:   domain.SeatClassEconomy,
		SeatCount:   2,
		TotalCents:  36000,
		Status:      domain.BookingStatusConfirmed,
	}}

	var saved domain.Flight
	mockFlights.On("List", ctx).Return([]domain.Flight{flight}, nil).Once()
	mockFlights.On("Save", ctx, mock.AnythingOfType("domain.Flight")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Flight) }).
		Return(nil).Once()

	newClass := domain.SeatClassBusiness
	updated, err := service.Modify(ctx, ModifyRequest{BookingID: bookingID, NewClass: &newClass})

	require.NoError(t, err)
	assert.Equal(t, domain.SeatClassBusiness, updated.SeatClass)
	assert.Equal(t, 2, updated.SeatCount)
	assert.Equal(t, int64(108000), updated.TotalCents)
	assert.Equal(t, 120, saved.EconomySeats)
	assert.Equal(t, 16, saved.BusinessSeats)
	mockFlights.AssertExpectations(t)
}

func TestBookingService_GetMyBookings_MostRecentFirst(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	service := newTestService(mockFlights, mockPassengers)

	ctx := context.Background()
	passengerID := uuid.New()
	flight := testFlight()
	first := domain.Booking{
		ID: uuid.New(), PassengerID: passengerID, FlightCode: flight.Code,
		SeatClass: domain.SeatClassEconomy, SeatCount: 1,
		CreatedAt: fixedNow.Add(-2 * time.Hour), Status: domain.BookingStatusConfirmed,
	}
	second := domain.Booking{
		ID: uuid.New(), PassengerID: passengerID, FlightCode: flight.Code,
		SeatClass: domain.SeatClassBusiness, SeatCount: 1,
		CreatedAt: fixedNow.Add(-time.Hour), Status: domain.BookingStatusConfirmed,
	}
	other := domain.Booking{
		ID: uuid.New(), PassengerID: uuid.New(), FlightCode: flight.Code,
		SeatClass: domain.SeatClassEconomy, SeatCount: 1,
		CreatedAt: fixedNow, Status: domain.BookingStatusConfirmed,
	}
	flight.Bookings = []domain.Booking{first, second, other}
	mockFlights.On("List", ctx).Return([]domain.Flight{flight}, nil).Once()

	bookings, err := service.GetMyBookings(ctx, passengerID)

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, first.ID, bookings[1].ID)
}

// Full lifecycle against real JSON-backed repositories: book, modify across
// classes, cancel, with seat conservation checked after every step.
func TestBookingService_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	flightRepo := repository.NewFlightRepository(filepath.Join(dir, "flights.json"))
	passengerRepo := repository.NewPassengerRepository(filepath.Join(dir, "passengers.json"))
	service := newTestService(flightRepo, passengerRepo)

	ctx := context.Background()
	passenger := domain.Passenger{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}
	require.NoError(t, passengerRepo.Save(ctx, passenger))
	require.NoError(t, flightRepo.Save(ctx, testFlight()))

	created, err := service.Book(ctx, BookRequest{
		PassengerID: passenger.ID,
		FlightCode:  "RJ101",
		Class:       domain.SeatClassEconomy,
		SeatCount:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(36000), created.TotalCents)
	assertCounters(t, ctx, flightRepo, 118, 18, 8)

	newClass := domain.SeatClassBusiness
	newCount := 2
	updated, err := service.Modify(ctx, ModifyRequest{
		BookingID:    created.ID,
		NewClass:     &newClass,
		NewSeatCount: &newCount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(108000), updated.TotalCents)
	assertCounters(t, ctx, flightRepo, 120, 16, 8)

	ok, err := service.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assertCounters(t, ctx, flightRepo, 120, 18, 8)

	bookings, err := service.GetMyBookings(ctx, passenger.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.BookingStatusCancelled, bookings[0].Status)

	// Cancelling again stays idempotent.
	ok, err = service.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assertCounters(t, ctx, flightRepo, 120, 18, 8)
}

// assertCounters also checks conservation: counter plus active bookings per
// class must equal capacity.
func assertCounters(t *testing.T, ctx context.Context, repo repository.FlightRepository, economy, business, first int) {
	t.Helper()

	flight, ok, err := repo.GetByCode(ctx, "RJ101")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, economy, flight.EconomySeats)
	assert.Equal(t, business, flight.BusinessSeats)
	assert.Equal(t, first, flight.FirstSeats)

	for _, class := range []domain.SeatClass{domain.SeatClassEconomy, domain.SeatClassBusiness, domain.SeatClassFirst} {
		active := 0
		for _, b := range flight.Bookings {
			if b.Active() && b.SeatClass == class {
				active += b.SeatCount
			}
		}
		assert.Equal(t, flight.Capacity(class), flight.Available(class)+active,
			"class %s counters must reconcile with active bookings", class)
		assert.GreaterOrEqual(t, flight.Available(class), 0)
		assert.LessOrEqual(t, flight.Available(class), flight.Capacity(class))
	}
}
