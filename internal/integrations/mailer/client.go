// Package mailer отправка писем подтверждения бронирования через SMTP
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент отправки писем подтверждения
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

// SendConfirmation отправляет письмо подтверждения бронирования
// При testMode тема и текст помечаются как тестовые, адресат не меняется
func (c *Client) SendConfirmation(conf Confirmation, testMode bool) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", conf.Email)
	m.SetHeader("Subject", subject(testMode))
	m.SetBody("text/plain", body(conf, testMode))

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: SendConfirmation - dial and send: %v", ErrSendFailed, err)
	}

	c.log.Info("Mailer: confirmation sent to %s, visits: %d", conf.Email, len(conf.Visits))
	return nil
}

func subject(testMode bool) string {
	if testMode {
		return "[TEST] Подтверждение записи на день открытых дверей"
	}
	return "Подтверждение записи на день открытых дверей"
}

func body(conf Confirmation, testMode bool) string {
	var b strings.Builder

	if testMode {
		b.WriteString("Это тестовое письмо, запись не является действительной.\n\n")
	}

	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", conf.FullName)
	b.WriteString("Вы записаны на следующие мероприятия:\n")
	for _, v := range conf.Visits {
		fmt.Fprintf(&b, "  - %s, %s\n", v.PlaceName, v.StartsAt.Format(domain.DateTimeFormat))
	}
	fmt.Fprintf(&b, "\nКод подтверждения: %s\n", conf.ConfirmationCode)

	return b.String()
}
