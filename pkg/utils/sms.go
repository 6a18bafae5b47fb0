package utils

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SMSConfigured reports whether Africa's Talking credentials are set.
func SMSConfigured() bool {
	return os.Getenv("AT_USERNAME") != "" && os.Getenv("AT_API_KEY") != ""
}

func sendSMS(message string, recipients []string) error {
	username := os.Getenv("AT_USERNAME")
	apiKey := os.Getenv("AT_API_KEY")
	if username == "" {
		return fmt.Errorf("africa's talking username not set")
	}
	if apiKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	baseURL := "https://api.africastalking.com/version1/messaging"

	data := url.Values{}
	data.Set("username", username)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	req, err := http.NewRequest("POST", baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", apiKey)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	log.Printf("Successfully sent SMS to %d recipient(s)", len(recipients))
	return nil
}

// BookingStatusSMS is the text sent to a customer when an admin confirms
// or cancels their booking.
func BookingStatusSMS(customerName, tripTitle, status string) string {
	switch status {
	case "confirmed":
		return fmt.Sprintf("Assalamu alaikum %s, your booking for %s is confirmed. We will contact you with travel details.",
			customerName, tripTitle)
	case "cancelled":
		return fmt.Sprintf("Dear %s, your booking for %s has been cancelled. Please contact us if you have questions.",
			customerName, tripTitle)
	default:
		return fmt.Sprintf("Dear %s, your booking for %s is now %s.", customerName, tripTitle, status)
	}
}

func SendBookingStatusSMS(phone, customerName, tripTitle, status string) error {
	return sendSMS(BookingStatusSMS(customerName, tripTitle, status), []string{phone})
}
