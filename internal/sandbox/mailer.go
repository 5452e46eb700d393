package sandbox

import (
	"log"
	"sync"
)

// Mailer delivers account emails.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("Mail to %s: %s\n%s", to, subject, body)
	return nil
}

// Mail is one message kept by MemoryMailer.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// MemoryMailer keeps sent emails in memory.
type MemoryMailer struct {
	mu   sync.Mutex
	sent []Mail
}

func (m *MemoryMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Mail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns the delivered emails in order.
func (m *MemoryMailer) Sent() []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Mail(nil), m.sent...)
}
