package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCaptchaRejected возвращается, когда проверка reCAPTCHA не пройдена
	ErrCaptchaRejected = errors.New("create_booking: captcha verification failed")

	// ErrTooManyPeople возвращается, когда размер группы превышает допустимый
	ErrTooManyPeople = errors.New("create_booking: party size exceeds the allowed maximum")

	// ErrSchoolRequired возвращается, когда категория обязательна, но не указана
	ErrSchoolRequired = errors.New("create_booking: school code is required")

	// ErrSchoolNotFound возвращается, когда указанная школа не найдена
	ErrSchoolNotFound = errors.New("create_booking: school not found")

	// ErrTooManySlots возвращается, когда выбрано больше слотов, чем разрешено
	ErrTooManySlots = errors.New("create_booking: too many slots selected")

	// ErrConflictingSelection возвращается, когда одно место выбрано более одного раза
	ErrConflictingSelection = errors.New("create_booking: conflicting selections for the same place")

	// ErrUnknownAppointment возвращается, когда пара (место, слот) не существует
	ErrUnknownAppointment = errors.New("create_booking: unknown appointment")

	// ErrIneligibleSlot возвращается, когда категория посетителя не допущена на слот
	ErrIneligibleSlot = errors.New("create_booking: slot is not available for this category")

	// ErrDuplicateEmail возвращается при повторной регистрации на тот же email
	ErrDuplicateEmail = errors.New("create_booking: email already registered")

	// ErrCapacityExceeded возвращается, когда хотя бы одно из выбранных мест заполнено
	ErrCapacityExceeded = errors.New("create_booking: place capacity exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
