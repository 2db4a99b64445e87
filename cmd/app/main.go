package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airticket/api"
	"github.com/Domenick1991/airticket/config"
	"github.com/Domenick1991/airticket/internal/bootstrap"
	"github.com/Domenick1991/airticket/internal/cache"
	"github.com/Domenick1991/airticket/internal/kafka"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/Domenick1991/airticket/internal/seed"
	"github.com/Domenick1991/airticket/internal/service/booking"
	"github.com/Domenick1991/airticket/internal/service/flights"
	"github.com/Domenick1991/airticket/internal/service/importer"
	"github.com/Domenick1991/airticket/internal/service/manager"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flightRepo := repository.NewFlightRepository(cfg.Storage.FlightsPath())
	passengerRepo := repository.NewPassengerRepository(cfg.Storage.PassengersPath())

	if cfg.Storage.Seed {
		if err := seed.EnsureSampleData(ctx, flightRepo, passengerRepo); err != nil {
			log.Fatalf("seed data: %v", err)
		}
	}

	var bookingOpts []booking.BookingServiceOption
	var flightCache flights.FlightCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
		flightCache = redisCache
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		bookingOpts = append(bookingOpts, booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	}

	bookingService := booking.NewBookingService(flightRepo, passengerRepo, producer, cfg.Kafka.BookingTopic, bookingOpts...)
	flightService := flights.NewFlightService(flightRepo, flightCache)
	managerService := manager.NewManagerService(flightRepo, passengerRepo)
	csvImporter := importer.NewCSVImporter(flightRepo)

	handlers := bootstrap.Handlers{
		Flights:    api.NewFlightHandler(flightService),
		Bookings:   api.NewBookingHandler(bookingService),
		Passengers: api.NewPassengerHandler(passengerRepo),
		Manager:    api.NewManagerHandler(managerService, csvImporter),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
