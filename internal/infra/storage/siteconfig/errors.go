package siteconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация площадки не найдена
	ErrConfigNotFound = errors.New("siteconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("siteconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("siteconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("siteconfig.repository: failed to scan row")
)
