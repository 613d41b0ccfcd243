package school

import "errors"

var (
	// ErrSchoolNotFound возвращается, когда школа не найдена
	ErrSchoolNotFound = errors.New("school.repository: school not found")

	// ErrSchoolReferenced возвращается при попытке удалить школу,
	// на которую ссылается хотя бы один посетитель
	ErrSchoolReferenced = errors.New("school.repository: school is referenced by students")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("school.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("school.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("school.repository: failed to scan row")
)
