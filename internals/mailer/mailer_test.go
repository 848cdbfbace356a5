package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLocalized(t *testing.T) {
	data := RegistrationMail{FullName: "Marko Petrović"}

	sr, err := Render(RegistrationApproved, "sr", "marko@example.com", data)
	require.NoError(t, err)
	assert.Equal(t, "Prijava odobrena - VagSocietySerbia majski skup", sr.Subject)
	assert.Contains(t, sr.Text, "Zdravo Marko Petrović")

	en, err := Render(RegistrationApproved, "en", "marko@example.com", data)
	require.NoError(t, err)
	assert.Equal(t, "Registration approved - VagSocietySerbia May meet", en.Subject)
	assert.Contains(t, en.HTML, "Hi Marko Petrović")

	// bahasa tidak dikenal → sr
	de, err := Render(RegistrationPending, "de", "x@example.com", data)
	require.NoError(t, err)
	assert.Contains(t, de.Subject, "Prijava primljena")

	// admin hanya sr
	admin, err := Render(RegistrationAdmin, "en", "admin@example.com", RegistrationMail{FullName: "A", ImageURLs: []string{"https://x/1.jpg"}})
	require.NoError(t, err)
	assert.Contains(t, admin.Text, "- https://x/1.jpg")
}

func TestRenderEscapesHTMLOnly(t *testing.T) {
	data := RegistrationMail{FullName: `Tom & <b>Jerry</b>`}
	m, err := Render(RegistrationPending, "en", "t@example.com", data)
	require.NoError(t, err)
	assert.Contains(t, m.HTML, "Tom &amp; &lt;b&gt;Jerry&lt;/b&gt;")
	assert.Contains(t, m.Text, "Tom & <b>Jerry</b>")
}

func TestRenderOrderMail(t *testing.T) {
	data := OrderMail{
		CheckoutRef: "VAG-ABC123",
		OrderIDs:    []string{"o1", "o2"},
		FullName:    "Ana",
		Lines: []OrderMailLine{
			{Name: "Majica", Quantity: 2, LineLabel: "50,00 €"},
		},
		TotalLabel: "50,00 €",
	}
	m, err := Render(OrderAdmin, "sr", "admin@example.com", data)
	require.NoError(t, err)
	assert.Contains(t, m.Text, "- Majica x2 (50,00 €)")
	assert.Contains(t, m.Text, "ID narudžbina: o1, o2")
}

func TestBuildMIMEAlternative(t *testing.T) {
	raw, err := BuildMIME("VAG Society <no-reply@vagsocietyserbia.com>", Message{
		To:      "buyer@example.com",
		Subject: "Potvrda narudžbine",
		Text:    "Hvala!",
		HTML:    "<p>Hvala!</p>",
	}, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)
	subj, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Potvrda narudžbine", subj)

	var types []string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		h, ok := p.Header.(*mail.InlineHeader)
		require.True(t, ok)
		ct, _, _ := h.ContentType()
		types = append(types, ct)
		body, _ := io.ReadAll(p.Body)
		assert.Contains(t, string(body), "Hvala!")
	}
	assert.Equal(t, []string{"text/plain", "text/html"}, types)
}

type resendBody struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

func TestResendSender(t *testing.T) {
	var got resendBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		if got.To[0] == "fail@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	s, err := NewResendSender("re_test", "no-reply@vagsocietyserbia.com", srv.URL)
	require.NoError(t, err)
	require.NoError(t, s.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi", Text: "t"}))
	assert.Equal(t, "no-reply@vagsocietyserbia.com", got.From)
	assert.Equal(t, "Hi", got.Subject)

	err = s.Send(context.Background(), Message{To: "fail@example.com", Subject: "Hi", Text: "t"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid"))
}

func TestNotifyCountsFailures(t *testing.T) {
	rec := &Recorder{}
	out := Notify(context.Background(), rec,
		Message{To: "a@example.com", Subject: "A"},
		Message{To: "", Subject: "B"},
	)
	assert.Equal(t, 2, out.Attempted)
	assert.Equal(t, 1, out.Sent)
	assert.False(t, out.OK())
	assert.Len(t, rec.Messages(), 1)

	failing := &Recorder{Err: errors.New("smtp down")}
	out = NotifyRendered(context.Background(), failing,
		RenderFunc(RegistrationPending, "sr", "a@example.com", RegistrationMail{FullName: "A"}),
	)
	assert.Equal(t, Outcome{Attempted: 1, Sent: 0, Failures: []string{"a@example.com: smtp down"}}, out)

	// detail kegagalan tidak ikut ter-serialize ke response
	raw, err := sonic.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"attempted":1,"sent":0}`, string(raw))

	assert.Equal(t, Outcome{}, Notify(context.Background(), nil, Message{To: "x@example.com", Subject: "x"}))
}
