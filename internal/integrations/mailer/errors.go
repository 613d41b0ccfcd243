package mailer

import "errors"

var (
	// ErrSendFailed возвращается, когда письмо не удалось отправить через SMTP
	ErrSendFailed = errors.New("failed to send email")
)
