package services

import (
	"fmt"
	"log"
	"net/smtp"

	"formacao-backend/internal/config"
)

// EmailService sends transactional mail. Without SMTP configuration it
// runs in dev mode and logs instead of sending.
type EmailService struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	appURL  string
	devMode bool
}

func NewEmailService(cfg *config.Config) *EmailService {
	devMode := cfg.SMTPHost == "" || cfg.SMTPUser == ""
	if devMode {
		log.Println("EmailService: SMTP not configured, running in dev mode (emails logged)")
	}

	return &EmailService{
		host:    cfg.SMTPHost,
		port:    cfg.SMTPPort,
		user:    cfg.SMTPUser,
		pass:    cfg.SMTPPass,
		from:    cfg.SMTPFrom,
		appURL:  cfg.FrontendURL,
		devMode: devMode,
	}
}

// SendCompletionEmail notifies a user that they passed a training quiz.
// Failures are the caller's to log; a quiz submission never fails
// because mail did not go out.
func (s *EmailService) SendCompletionEmail(to, fullName, trainingTitle string, score int) error {
	subject := fmt.Sprintf("Formação concluída: %s", trainingTitle)
	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Parabéns, %s!</h2>
			<p>Concluiu com sucesso a formação <strong>%s</strong> com uma pontuação de <strong>%d%%</strong>.</p>
			<p><a href="%s">Voltar à plataforma</a></p>
		</div>`,
		fullName, trainingTitle, score, s.appURL,
	)

	return s.sendHTML(to, subject, body)
}

func (s *EmailService) sendHTML(to, subject, htmlBody string) error {
	if s.devMode {
		log.Printf("[DEV EMAIL] To: %s | Subject: %s", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
