package catalog

import "errors"

var (
	// ErrPlaceNotFound возвращается, когда место не найдено
	ErrPlaceNotFound = errors.New("place not found")

	// ErrSlotNotFound возвращается, когда слот расписания не найден
	ErrSlotNotFound = errors.New("schedule slot not found")

	// ErrSchoolNotFound возвращается, когда школа не найдена
	ErrSchoolNotFound = errors.New("school not found")

	// ErrSchoolReferenced возвращается при попытке удалить школу,
	// на которую ссылаются зарегистрированные посетители
	ErrSchoolReferenced = errors.New("school is referenced by students")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
