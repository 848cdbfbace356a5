package mailer

import (
	"context"
	"log"
	"time"
)

// Outcome hasil fase notifikasi. Tidak pernah mengubah hasil commit.
// Failures hanya untuk log/test; tidak ikut ke response karena berisi alamat & error SMTP.
type Outcome struct {
	Attempted int      `json:"attempted"`
	Sent      int      `json:"sent"`
	Failures  []string `json:"-"`
}

func (o Outcome) OK() bool { return o.Attempted == o.Sent }

const perMessageTimeout = 20 * time.Second

// Notify mengirim semua pesan satu per satu; error hanya dicatat.
func Notify(ctx context.Context, s Sender, msgs ...Message) Outcome {
	var out Outcome
	if s == nil {
		return out
	}
	for _, m := range msgs {
		out.Attempted++
		mctx, cancel := context.WithTimeout(ctx, perMessageTimeout)
		err := s.Send(mctx, m)
		cancel()
		if err != nil {
			log.Printf("[WARN] gagal kirim email ke %s (%q): %v", m.To, m.Subject, err)
			out.Failures = append(out.Failures, m.To+": "+err.Error())
			continue
		}
		out.Sent++
	}
	return out
}

// NotifyRendered: render lalu kirim. Error render dihitung sebagai kegagalan.
func NotifyRendered(ctx context.Context, s Sender, renders ...func() (Message, error)) Outcome {
	var (
		msgs []Message
		out  Outcome
	)
	for _, r := range renders {
		m, err := r()
		if err != nil {
			log.Printf("[ERROR] render email: %v", err)
			out.Attempted++
			out.Failures = append(out.Failures, "render: "+err.Error())
			continue
		}
		msgs = append(msgs, m)
	}
	sent := Notify(ctx, s, msgs...)
	out.Attempted += sent.Attempted
	out.Sent += sent.Sent
	out.Failures = append(out.Failures, sent.Failures...)
	return out
}
