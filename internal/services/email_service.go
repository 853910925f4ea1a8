package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"suilog/internal/contribution"
)

// EmailService delivers completion-confirmation codes and the finished
// certificate.
type EmailService interface {
	SendConfirmationCode(email, projectName, code string) error
	SendCompletionCertificate(email, projectName, certificatePath string, summary contribution.Summary) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendConfirmationCode(email, projectName, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Confirm project completion")

	body := fmt.Sprintf(`
		<h3>Project completion requested</h3>
		<p>A request was made to complete the project <strong>%s</strong>.</p>
		<p>Enter the following code to confirm: <strong>%s</strong></p>
		<p>If you did not request this, you can ignore this email.</p>
	`, projectName, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation code: %w", err)
	}

	return nil
}

func (s *emailService) SendCompletionCertificate(email, projectName, certificatePath string, summary contribution.Summary) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Completion certificate - %s", projectName))

	body := fmt.Sprintf(`
		<h2>Congratulations!</h2>
		<p>The project <strong>%s</strong> is complete.</p>
		<p>%d of %d tasks finished with a contribution score of <strong>%.1f</strong>.</p>
		<p>Your certificate is attached.</p>
	`, projectName, summary.CompletedTasks, summary.TotalTasks, summary.ContributionScore)

	m.SetBody("text/html", body)
	if certificatePath != "" {
		m.Attach(certificatePath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send completion certificate: %w", err)
	}

	return nil
}
