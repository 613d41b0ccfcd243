package recaptcha

import "errors"

var (
	// ErrRejected возвращается, когда проверка токена не пройдена
	// (неуспешный ответ или score ниже допустимого порога)
	ErrRejected = errors.New("recaptcha client: verification rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("recaptcha client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса верификации
	ErrInvalidResponse = errors.New("recaptcha client: invalid response")
)
