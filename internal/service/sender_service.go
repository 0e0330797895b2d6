package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"rentx/internal/booking"
	"rentx/internal/db"
	"rentx/internal/entities"
)

// SenderService sends booking lifecycle notifications to customers.
// Everything runs off the request path; failures are logged, never returned.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// NotifyBookingStatus emails the customer when a booking is confirmed or
// cancelled, and texts them too when a phone number was given.
func (s *SenderService) NotifyBookingStatus(b *db.Booking, vehicleName string, status booking.Status) {
	emailData := entities.BookingEmailData{
		CustomerName:       b.CustomerName,
		BookingCode:        b.Code,
		VehicleName:        vehicleName,
		StartDateFormatted: b.StartDate.Format("02 Jan 2006"),
		EndDateFormatted:   b.EndDate.Format("02 Jan 2006"),
		TotalFormatted:     fmt.Sprintf("%.2f", float64(b.TotalPriceCents)/100),
		Status:             string(status),
		CurrentYear:        time.Now().Year(),
	}

	subject := fmt.Sprintf("Your RentX booking is %s - Code: %s", status, b.Code)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at RentX is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Vehicle: %s\n"+
			"Pick-up: %s\n"+
			"Drop-off: %s\n"+
			"Total: %s\n\n"+
			"Thank you for choosing RentX.\n\n"+
			"RentX. All rights reserved.",
		emailData.CustomerName, status, emailData.BookingCode, emailData.VehicleName,
		emailData.StartDateFormatted, emailData.EndDateFormatted, emailData.TotalFormatted,
	)

	htmlBody := plainBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	if tmpl, err := template.ParseFiles(tmplPath); err != nil {
		log.Printf("could not parse booking email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("could not render booking email template for %s: %v", b.Code, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody); err != nil {
			log.Printf("failed to send status email for booking %s: %v", emailData.BookingCode, err)
		}
	}(b.CustomerEmail, b.CustomerName)

	if b.CustomerPhone.Valid {
		smsBody := fmt.Sprintf("RentX: booking %s is now %s.\nPick-up: %s.\nDetails in your email.",
			b.Code, status, emailData.StartDateFormatted)
		go func(phone string) {
			if err := SendSMS(phone, smsBody); err != nil {
				log.Printf("failed to send status SMS for booking %s: %v", b.Code, err)
			}
		}(b.CustomerPhone.String)
	}
}
