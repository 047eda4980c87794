package docstore

import "fmt"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the backend named by driver.
func Open(driver, dsn string) (Database, error) {
	switch driver {
	case DriverPostgres:
		db, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverSQLite:
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
