// Package mailer mengirim email transaksional (registrasi event dan order).
// Semua pengiriman bersifat best-effort: kegagalan dicatat, tidak membatalkan data.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"vagsociety_backend/internals/configs"
)

var ErrNoRecipient = errors.New("mailer: penerima kosong")

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("mailer: subject kosong")
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender memilih driver sesuai MAIL_DRIVER.
func NewSender(cfg *configs.Config) (Sender, error) {
	switch cfg.MailDriver {
	case "smtp":
		return &SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}, nil
	case "resend":
		return NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, cfg.ResendURL)
	default:
		return LogSender{From: cfg.MailFrom}, nil
	}
}

// LogSender hanya menulis ke log (development).
type LogSender struct {
	From string
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	_ = ctx
	if err := msg.validate(); err != nil {
		return err
	}
	log.Printf("[INFO] mail(log) from=%s to=%s subject=%q\n%s", s.From, msg.To, msg.Subject, msg.Text)
	return nil
}

// Recorder menyimpan pesan di memori; Err != nil membuat semua Send gagal.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
	Err  error
}

func (r *Recorder) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// To mengembalikan pesan untuk satu alamat.
func (r *Recorder) To(addr string) []Message {
	var out []Message
	for _, m := range r.Messages() {
		if strings.EqualFold(m.To, addr) {
			out = append(out, m)
		}
	}
	return out
}

func (r *Recorder) String() string {
	return fmt.Sprintf("Recorder(%d messages)", len(r.Messages()))
}
