package usecase

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

var activationTemplate = template.Must(template.New("activation").Parse(`<p>Hola {{.Name}},</p>
<p>Para activar tu cuenta haz clic en el siguiente enlace:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>`))

var broadcastTemplate = template.Must(template.New("broadcast").Parse(`<p><strong>{{.Organization}}</strong></p>
<div style="white-space:pre-line">{{.Body}}</div>`))

func activationEmail(u *entity.User, baseURL string) (ports.Email, error) {
	if u.Token == nil {
		return ports.Email{}, fmt.Errorf("usuario %d sin token de activación", u.ID)
	}
	name := u.FullName()
	if name == "" {
		name = u.Username
	}
	var buf bytes.Buffer
	err := activationTemplate.Execute(&buf, map[string]string{
		"Name": name,
		"Link": baseURL + "/activate?token=" + *u.Token,
	})
	if err != nil {
		return ports.Email{}, fmt.Errorf("render activation email: %w", err)
	}
	return ports.Email{To: []string{u.Email}, Subject: "Activa tu cuenta", HTML: buf.String()}, nil
}

func broadcastEmail(org *entity.Organization, to, subject, body string) (ports.Email, error) {
	var buf bytes.Buffer
	err := broadcastTemplate.Execute(&buf, map[string]string{"Organization": org.FullName(), "Body": body})
	if err != nil {
		return ports.Email{}, fmt.Errorf("render broadcast email: %w", err)
	}
	return ports.Email{To: []string{to}, Subject: subject, HTML: buf.String()}, nil
}
