// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/lapalette/backend/internal/config"
)

// NotificationService sends plain-text email alerts. Callers on the request
// path dispatch it in a goroutine and never depend on its outcome.
type NotificationService struct {
	config *config.Config
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config: config,
	}
}

// SendClientMessageAlert notifies the sales inbox that a client wrote on an
// order thread. Silently a no-op when no alert address is configured.
func (s *NotificationService) SendClientMessageAlert(orderCode, senderName, message string) error {
	to := s.config.Email.SalesAlertEmail
	if to == "" {
		return nil
	}

	if senderName == "" {
		senderName = "Client"
	}

	subject := fmt.Sprintf("Nouveau message client pour la commande %s", orderCode)
	body := fmt.Sprintf("Commande: %s\nDe: %s\n\n%s", orderCode, senderName, message)

	return s.sendEmail(to, subject, body)
}

// SendStaffMessageAlert notifies the order's customer that staff replied.
func (s *NotificationService) SendStaffMessageAlert(to, orderCode, senderName, message string) error {
	if to == "" {
		return nil
	}

	if senderName == "" {
		senderName = "Votre conseiller La Palette"
	}

	subject := fmt.Sprintf("Nouveau message pour votre commande %s", orderCode)
	body := fmt.Sprintf("Commande: %s\nDe: %s\n\n%s", orderCode, senderName, message)

	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" || s.config.Email.SMTPPassword == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}
