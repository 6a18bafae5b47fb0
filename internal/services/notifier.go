package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/pkg/utils"
	"gorm.io/gorm"
)

const notifyTimeout = 30 * time.Second

// Notifier fans admin and customer notifications out to the websocket
// hub, email, SMS and FCM. Every channel is best effort: failures are
// logged and never reach the request that triggered them.
type Notifier struct {
	db          *gorm.DB
	hub         *Hub
	agencyEmail string
	wg          sync.WaitGroup
}

func NewNotifier(db *gorm.DB, hub *Hub) *Notifier {
	return &Notifier{
		db:          db,
		hub:         hub,
		agencyEmail: os.Getenv("AGENCY_EMAIL"),
	}
}

// Wait blocks until all in-flight deliveries finish.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) goDeliver(name string, fn func(ctx context.Context)) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered from panic in %s notification: %v", name, r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// alertRecipients merges AGENCY_EMAIL with the admins who opted in to
// email alerts.
func (n *Notifier) alertRecipients(ctx context.Context) []string {
	seen := map[string]bool{}
	var recipients []string
	add := func(email string) {
		if email != "" && !seen[email] {
			seen[email] = true
			recipients = append(recipients, email)
		}
	}
	add(n.agencyEmail)

	if n.db != nil {
		emails, err := database.ListAlertEmails(ctx, n.db)
		if err != nil {
			log.Printf("Error loading alert recipients: %v", err)
		}
		for _, e := range emails {
			add(e)
		}
	}
	return recipients
}

func bookingEmail(b *models.Booking) utils.BookingEmail {
	tripTitle := "a deleted trip"
	if b.Trip != nil {
		tripTitle = b.Trip.Title
	}
	return utils.BookingEmail{
		CustomerName:      b.CustomerName,
		CustomerEmail:     b.CustomerEmail,
		CustomerPhone:     b.CustomerPhone,
		TripTitle:         tripTitle,
		NumberOfTravelers: b.NumberOfTravelers,
		TotalPrice:        b.TotalPrice,
		Status:            string(b.Status),
	}
}

// NewBooking announces a booking submitted from the public site.
func (n *Notifier) NewBooking(booking *models.Booking) {
	if n == nil || booking == nil {
		return
	}
	n.hub.Publish(EventNewBooking, booking)

	snapshot := *booking
	n.goDeliver("new booking", func(ctx context.Context) {
		msg := bookingEmail(&snapshot)

		if utils.EmailConfigured() {
			for _, to := range n.alertRecipients(ctx) {
				if err := utils.SendNewBookingNotification(to, msg); err != nil {
					log.Printf("Error sending booking alert to %s: %v", to, err)
				}
			}
		}

		err := SendTopicNotification(ctx, AdminAlertsTopic, NotificationPayload{
			Title: "New booking request",
			Body:  fmt.Sprintf("%s requested %d place(s) on %s", msg.CustomerName, msg.NumberOfTravelers, msg.TripTitle),
			Data: map[string]interface{}{
				"type":      EventNewBooking,
				"bookingId": snapshot.ID,
			},
		})
		if err != nil {
			log.Printf("Error sending booking push alert: %v", err)
		}
	})
}

// BookingStatusChanged tells admins and the customer about a status update.
func (n *Notifier) BookingStatusChanged(booking *models.Booking) {
	if n == nil || booking == nil {
		return
	}
	n.hub.Publish(EventBookingStatusChanged, booking)

	snapshot := *booking
	n.goDeliver("booking status", func(ctx context.Context) {
		msg := bookingEmail(&snapshot)

		if utils.EmailConfigured() && msg.CustomerEmail != "" {
			if err := utils.SendBookingStatusEmail(msg); err != nil {
				log.Printf("Error sending status email for booking %d: %v", snapshot.ID, err)
			}
		}
		if utils.SMSConfigured() && msg.CustomerPhone != "" {
			if err := utils.SendBookingStatusSMS(msg.CustomerPhone, msg.CustomerName, msg.TripTitle, msg.Status); err != nil {
				log.Printf("Error sending status SMS for booking %d: %v", snapshot.ID, err)
			}
		}
	})
}

// NewContactMessage announces a contact form submission.
func (n *Notifier) NewContactMessage(message *models.ContactMessage) {
	if n == nil || message == nil {
		return
	}
	n.hub.Publish(EventNewContactMessage, message)

	snapshot := *message
	n.goDeliver("contact message", func(ctx context.Context) {
		if utils.EmailConfigured() {
			for _, to := range n.alertRecipients(ctx) {
				if err := utils.SendContactNotification(to, snapshot.Name, snapshot.Email, snapshot.Subject, snapshot.Message); err != nil {
					log.Printf("Error sending contact alert to %s: %v", to, err)
				}
			}
		}

		err := SendTopicNotification(ctx, AdminAlertsTopic, NotificationPayload{
			Title: "New contact message",
			Body:  fmt.Sprintf("%s: %s", snapshot.Name, snapshot.Subject),
			Data: map[string]interface{}{
				"type":      EventNewContactMessage,
				"messageId": snapshot.ID,
			},
		})
		if err != nil {
			log.Printf("Error sending contact push alert: %v", err)
		}
	})
}
