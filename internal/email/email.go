package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	fmt.Printf("send email to %s: booking %s on flight %s is %s (%d x %s, total %s)\n",
		event.Email, event.BookingID, event.FlightCode, event.Status,
		event.SeatCount, event.SeatClass, domain.FormatCents(event.TotalCents))
	return nil
}
