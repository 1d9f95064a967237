package mailer

import (
	netmail "net/mail"

	"github.com/wneessen/go-mail"
)

// Email is a rendered message. Addresses carry an optional display name.
type Email struct {
	to      netmail.Address
	from    netmail.Address
	subject string
	body    string
}

func (e *Email) To() netmail.Address {
	return e.to
}

func (e *Email) SetTo(to netmail.Address) {
	e.to = to
}

func (e *Email) From() netmail.Address {
	return e.from
}

func (e *Email) SetFrom(from netmail.Address) {
	e.from = from
}

func (e *Email) Subject() string {
	return e.subject
}

func (e *Email) SetSubject(subject string) {
	e.subject = subject
}

func (e *Email) Body() string {
	return e.body
}

func (e *Email) SetBody(body string) {
	e.body = body
}

func (e *Email) ToMessage() (*mail.Msg, error) {
	msg := mail.NewMsg()

	err := msg.FromFormat(e.from.Name, e.from.Address)
	if err != nil {
		return nil, err
	}

	err = msg.AddToFormat(e.to.Name, e.to.Address)
	if err != nil {
		return nil, err
	}

	msg.Subject(e.subject)
	msg.SetBodyString(mail.TypeTextPlain, e.body)

	return msg, nil
}

func NewEmail(subject, body string) *Email {
	return &Email{
		subject: subject,
		body:    body,
	}
}
