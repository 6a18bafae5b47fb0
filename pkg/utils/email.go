package utils

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

const companyName = "Al-Safa Umrah & Hajj Travel"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #0f766e; margin: 0;">Al-Safa Travel</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>Al-Safa Umrah &amp; Hajj Travel. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

// EmailConfigured reports whether any email transport is configured.
func EmailConfigured() bool {
	if os.Getenv("RESEND_API_KEY") != "" {
		return true
	}
	return os.Getenv("EMAIL_FROM") != "" && os.Getenv("SMTP_HOST") != ""
}

// sendEmail delivers through Resend when RESEND_API_KEY is set and falls
// back to SMTP otherwise.
func sendEmail(to []string, subject, body string) error {
	if key := os.Getenv("RESEND_API_KEY"); key != "" {
		return sendWithResend(key, to, subject, body)
	}
	return sendWithSMTP(to, subject, body)
}

func sendWithResend(apiKey string, to []string, subject, body string) error {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		return fmt.Errorf("EMAIL_FROM not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := resend.NewClient(apiKey)
	sent, err := client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", companyName, from),
		To:      to,
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		log.Printf("Failed to send email via Resend: %v", err)
		return err
	}

	log.Printf("Sent email %s to recipients: %v", sent.Id, to)
	return nil
}

func sendWithSMTP(to []string, subject, body string) error {
	emailFrom := os.Getenv("EMAIL_FROM")
	emailPassword := os.Getenv("EMAIL_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", companyName, emailFrom),
		"To: " + strings.Join(to, ","),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message)); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

func adminURL() string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return strings.TrimRight(base, "/") + "/admin"
}

func SendPasswordResetEmail(email, otp string) error {
	subject := "Password Reset Code - Al-Safa Admin"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Password Reset</h1>
					<p>Use the code below to reset your admin panel password. It expires in %d minutes.</p>
					<p style="font-size: 32px; letter-spacing: 8px; text-align: center;"><strong>%s</strong></p>
					<p>If you did not request a reset you can ignore this email.</p>
				</div>`+emailFooter,
		int(OTPExpiration.Minutes()), otp)

	return sendEmail([]string{email}, subject, body)
}

// BookingEmail carries the booking fields rendered into notifications
type BookingEmail struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	TripTitle         string
	NumberOfTravelers int
	TotalPrice        float64
	Status            string
}

func SendNewBookingNotification(agencyEmail string, b BookingEmail) error {
	subject := "New Booking Request - " + b.TripTitle
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Booking Request</h1>
					<p><strong>%s</strong> has requested <strong>%d</strong> place(s) on <strong>%s</strong>.</p>
					<p>Email: %s<br>Phone: %s<br>Total: %.2f</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s" style="background-color: #0f766e; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Open Admin Panel</a>
					</div>
				</div>`+emailFooter,
		html.EscapeString(b.CustomerName), b.NumberOfTravelers, html.EscapeString(b.TripTitle),
		html.EscapeString(b.CustomerEmail), html.EscapeString(b.CustomerPhone), b.TotalPrice, adminURL())

	return sendEmail([]string{agencyEmail}, subject, body)
}

func SendBookingStatusEmail(b BookingEmail) error {
	subject := fmt.Sprintf("Your booking is %s - %s", b.Status, companyName)
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking %s</h1>
					<p>Assalamu alaikum %s,</p>
					<p>Your booking for <strong>%s</strong> (%d traveler(s)) is now <strong>%s</strong>.</p>
					<p>Our team will contact you with the next steps.</p>
				</div>`+emailFooter,
		html.EscapeString(b.Status), html.EscapeString(b.CustomerName), html.EscapeString(b.TripTitle),
		b.NumberOfTravelers, html.EscapeString(b.Status))

	return sendEmail([]string{b.CustomerEmail}, subject, body)
}

func SendContactNotification(agencyEmail, name, email, subject, message string) error {
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Contact Message</h1>
					<p>From <strong>%s</strong> (%s)</p>
					<p><strong>%s</strong></p>
					<p style="white-space: pre-wrap;">%s</p>
				</div>`+emailFooter,
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(subject), html.EscapeString(message))

	return sendEmail([]string{agencyEmail}, "Contact form: "+subject, body)
}
