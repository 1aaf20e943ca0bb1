package services

import (
	"context"
	"log"
	"time"
)

// EmailSender is the notification-dispatch boundary. Implementations live
// under external/ and only move bytes; message content is composed here.
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, html string) error
}

// dispatchEmail hands a message to the sender on its own goroutine.
// Delivery failure is logged and never reaches the request that caused it.
func dispatchEmail(sender EmailSender, toEmail, subject, html string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sender.Send(ctx, toEmail, subject, html); err != nil {
			log.Printf("could not send %q email to %s: %v", subject, toEmail, err)
		}
	}()
}
