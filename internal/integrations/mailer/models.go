package mailer

import "time"

// Visit одна подтвержденная запись в письме
type Visit struct {
	PlaceName string
	StartsAt  time.Time
}

// Confirmation данные для письма подтверждения бронирования
type Confirmation struct {
	Email            string
	FullName         string
	ConfirmationCode string
	Visits           []Visit
}
