package dbmetrics

import (
	"database/sql"
	"time"

	"github.com/m04kA/OpenHouse-BookingService/pkg/metrics"
)

// defaultPoolStatsInterval период опроса статистики пула соединений
const defaultPoolStatsInterval = 15 * time.Second

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор статистики пула
// Горутина завершается при закрытии stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, service string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, service)

	go func() {
		ticker := time.NewTicker(defaultPoolStatsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsOpen.WithLabelValues(service).Set(float64(stats.OpenConnections))
				m.DBConnectionsInUse.WithLabelValues(service).Set(float64(stats.InUse))
				m.DBConnectionsIdle.WithLabelValues(service).Set(float64(stats.Idle))
			case <-stopCh:
				return
			}
		}
	}()

	return wrapped
}
