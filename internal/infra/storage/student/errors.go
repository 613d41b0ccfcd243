package student

import "errors"

var (
	// ErrStudentNotFound возвращается, когда посетитель не найден
	ErrStudentNotFound = errors.New("student.repository: student not found")

	// ErrDuplicateEmail возвращается при попытке повторной регистрации на тот же email
	ErrDuplicateEmail = errors.New("student.repository: email already registered")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("student.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("student.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("student.repository: failed to scan row")
)
