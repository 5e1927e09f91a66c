package email

import (
	"strconv"

	"alternus-gallery-io/api/pkg/util"

	gomail "github.com/go-mail/mail"
)

type Composer struct {
	Body       string
	Subject    string
	Sender     string
	SenderName string
	To         string
	ToName     string
}

// SendMail delivers a composed message through the configured SMTP relay.
func SendMail(c Composer) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.Sender, c.SenderName)
	m.SetAddressHeader("To", c.To, c.ToName)
	m.SetHeader("Subject", c.Subject)
	m.SetBody("text/html", c.Body)

	host := util.LoadEnvFor("SMTP_HOST")
	port, err := strconv.Atoi(util.LoadEnvOr("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	username := util.LoadEnvFor("SMTP_USERNAME")
	password := util.LoadEnvFor("SMTP_PASSWORD")

	dialer := gomail.NewDialer(host, port, username, password)
	return dialer.DialAndSend(m)
}
