package appointment

import "github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor
