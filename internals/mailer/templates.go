package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	"strings"
	texttpl "text/template"
)

type Kind string

const (
	RegistrationPending  Kind = "registration_pending"
	RegistrationApproved Kind = "registration_approved"
	RegistrationDeclined Kind = "registration_declined"
	RegistrationAdmin    Kind = "registration_admin"
	OrderAdmin           Kind = "order_admin"
	OrderBuyer           Kind = "order_buyer"
)

// RegistrationMail data untuk email registrasi event.
type RegistrationMail struct {
	ID             string
	FullName       string
	Email          string
	Phone          string
	CarModel       string
	Country        string
	City           string
	Trailer        bool
	AdditionalInfo string
	ImageURLs      []string
}

type OrderMailLine struct {
	Name      string
	Quantity  int
	UnitLabel string
	LineLabel string
}

// OrderMail data untuk email order (checkout keranjang atau satu produk).
type OrderMail struct {
	CheckoutRef     string
	OrderIDs        []string
	FullName        string
	Email           string
	Phone           string
	ShippingAddress string
	Lines           []OrderMailLine
	TotalLabel      string
}

type tmpl struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmltpl.Template
}

type source struct {
	subject, text, html string
}

// key: kind + "." + lang. Email admin hanya tersedia dalam sr.
var sources = map[string]source{
	"registration_pending.sr": {
		subject: `Prijava primljena - VagSocietySerbia majski skup`,
		text:    `Zdravo {{.FullName}}, prijava je primljena i čeka odobrenje. Obavestićemo vas kada bude potvrđena.`,
		html: `<h2>Prijava primljena</h2>
<p>Zdravo {{.FullName}},</p>
<p>Vaša prijava za majski skup je na čekanju. Javićemo se kada bude potvrđena.</p>`,
	},
	"registration_pending.en": {
		subject: `Registration received - VagSocietySerbia May meet`,
		text:    `Hi {{.FullName}}, your registration was received and is awaiting approval. We will let you know once it is confirmed.`,
		html: `<h2>Registration received</h2>
<p>Hi {{.FullName}},</p>
<p>Your registration for the May meet is pending. We will get back to you once it is confirmed.</p>`,
	},
	"registration_approved.sr": {
		subject: `Prijava odobrena - VagSocietySerbia majski skup`,
		text:    `Zdravo {{.FullName}}, vaša prijava je odobrena. Vidimo se na skupu!`,
		html: `<h2>Prijava odobrena</h2>
<p>Zdravo {{.FullName}},</p>
<p>Vaša prijava za majski skup je odobrena. Vidimo se uskoro!</p>`,
	},
	"registration_approved.en": {
		subject: `Registration approved - VagSocietySerbia May meet`,
		text:    `Hi {{.FullName}}, your registration has been approved. See you at the meet!`,
		html: `<h2>Registration approved</h2>
<p>Hi {{.FullName}},</p>
<p>Your registration for the May meet has been approved. See you soon!</p>`,
	},
	"registration_declined.sr": {
		subject: `Prijava odbijena - VagSocietySerbia majski skup`,
		text:    `Zdravo {{.FullName}}, nažalost vaša prijava ovog puta nije prihvaćena. Hvala na interesovanju.`,
		html: `<h2>Prijava odbijena</h2>
<p>Zdravo {{.FullName}},</p>
<p>Nažalost, vaša prijava za majski skup ovog puta nije prihvaćena. Hvala na interesovanju.</p>`,
	},
	"registration_declined.en": {
		subject: `Registration declined - VagSocietySerbia May meet`,
		text:    `Hi {{.FullName}}, unfortunately your registration was not accepted this time. Thank you for your interest.`,
		html: `<h2>Registration declined</h2>
<p>Hi {{.FullName}},</p>
<p>Unfortunately your registration for the May meet was not accepted this time. Thank you for your interest.</p>`,
	},
	"registration_admin.sr": {
		subject: `Nova prijava za skup: {{.FullName}}`,
		text: `Nova prijava od {{.FullName}} ({{.Email}}). Auto: {{.CarModel}}.
Telefon: {{.Phone}}
Lokacija: {{.City}}, {{.Country}}
Prikolica: {{if .Trailer}}Da{{else}}Ne{{end}}
{{if .AdditionalInfo}}Napomena: {{.AdditionalInfo}}
{{end}}Slike:
{{range .ImageURLs}}- {{.}}
{{end}}ID: {{.ID}}`,
		html: `<h2>Nova prijava za skup</h2>
<p><strong>Ime:</strong> {{.FullName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Telefon:</strong> {{.Phone}}</p>
<p><strong>Auto:</strong> {{.CarModel}}</p>
<p><strong>Lokacija:</strong> {{.City}}, {{.Country}}</p>
<p><strong>Prikolica:</strong> {{if .Trailer}}Da{{else}}Ne{{end}}</p>
{{if .AdditionalInfo}}<p><strong>Napomena:</strong> {{.AdditionalInfo}}</p>{{end}}
<ul>{{range .ImageURLs}}<li><a href="{{.}}">{{.}}</a></li>{{end}}</ul>
<p><strong>ID:</strong> {{.ID}}</p>`,
	},
	"order_admin.sr": {
		subject: `Nova narudžbina od {{.FullName}}`,
		text: `Nova narudžbina od {{.FullName}} ({{.Email}}).

Stavke:
{{range .Lines}}- {{.Name}} x{{.Quantity}} ({{.LineLabel}})
{{end}}
Ukupno: {{.TotalLabel}}
Adresa: {{.ShippingAddress}}
Telefon: {{.Phone}}
Ref: {{.CheckoutRef}}
ID narudžbina: {{join .OrderIDs ", "}}`,
		html: `<h2>Nova narudžbina - VagSocietySerbia</h2>
<p><strong>Kupac:</strong> {{.FullName}} ({{.Email}})</p>
<ul>{{range .Lines}}<li>{{.Name}} x{{.Quantity}} ({{.LineLabel}})</li>{{end}}</ul>
<p><strong>Ukupno:</strong> {{.TotalLabel}}</p>
<p><strong>Telefon:</strong> {{.Phone}}</p>
<p><strong>Adresa:</strong> {{.ShippingAddress}}</p>
<p><strong>Ref:</strong> {{.CheckoutRef}}</p>
<p><strong>ID narudžbina:</strong> {{join .OrderIDs ", "}}</p>`,
	},
	"order_buyer.sr": {
		subject: `Potvrda narudžbine - VagSocietySerbia`,
		text: `Hvala {{.FullName}}! Primili smo vašu narudžbinu ({{.CheckoutRef}}).

Stavke:
{{range .Lines}}- {{.Name}} x{{.Quantity}} ({{.LineLabel}})
{{end}}
Ukupno: {{.TotalLabel}}

Kontaktiraćemo vas uskoro sa detaljima isporuke i plaćanja.`,
		html: `<h2>Hvala na narudžbini, {{.FullName}}!</h2>
<p>Vaša narudžbina <strong>{{.CheckoutRef}}</strong> je potvrđena.</p>
<ul>{{range .Lines}}<li>{{.Name}} x{{.Quantity}} ({{.LineLabel}})</li>{{end}}</ul>
<p><strong>Ukupno:</strong> {{.TotalLabel}}</p>
<p>Uskoro šaljemo detalje isporuke i plaćanja.</p>`,
	},
	"order_buyer.en": {
		subject: `Order confirmation - VagSocietySerbia`,
		text: `Thank you {{.FullName}}! We received your order ({{.CheckoutRef}}).

Items:
{{range .Lines}}- {{.Name}} x{{.Quantity}} ({{.LineLabel}})
{{end}}
Total: {{.TotalLabel}}

We will contact you soon with shipping and payment details.`,
		html: `<h2>Thank you for your order, {{.FullName}}!</h2>
<p>Your order <strong>{{.CheckoutRef}}</strong> is confirmed.</p>
<ul>{{range .Lines}}<li>{{.Name}} x{{.Quantity}} ({{.LineLabel}})</li>{{end}}</ul>
<p><strong>Total:</strong> {{.TotalLabel}}</p>
<p>We will send shipping and payment details shortly.</p>`,
	},
}

var funcs = map[string]any{"join": strings.Join}

var compiled = mustCompile()

func mustCompile() map[string]tmpl {
	out := make(map[string]tmpl, len(sources))
	for key, src := range sources {
		out[key] = tmpl{
			subject: texttpl.Must(texttpl.New(key + ".subject").Funcs(funcs).Parse(src.subject)),
			text:    texttpl.Must(texttpl.New(key + ".text").Funcs(funcs).Parse(src.text)),
			html:    htmltpl.Must(htmltpl.New(key + ".html").Funcs(funcs).Parse(src.html)),
		}
	}
	return out
}

func lookup(kind Kind, lang string) (tmpl, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if t, ok := compiled[string(kind)+"."+lang]; ok {
		return t, true
	}
	t, ok := compiled[string(kind)+".sr"]
	return t, ok
}

// Render menghasilkan Message untuk kind + bahasa; bahasa tak dikenal jatuh ke sr.
func Render(kind Kind, lang, to string, data any) (Message, error) {
	t, ok := lookup(kind, lang)
	if !ok {
		return Message{}, fmt.Errorf("mailer: template %q tidak ada", kind)
	}
	var subj, text, html bytes.Buffer
	if err := t.subject.Execute(&subj, data); err != nil {
		return Message{}, err
	}
	if err := t.text.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := t.html.Execute(&html, data); err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: strings.TrimSpace(subj.String()),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// RenderFunc membungkus Render untuk NotifyRendered.
func RenderFunc(kind Kind, lang, to string, data any) func() (Message, error) {
	return func() (Message, error) { return Render(kind, lang, to, data) }
}
