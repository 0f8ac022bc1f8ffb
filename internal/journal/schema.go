package journal

import (
	"database/sql"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS snapshots (
            timestamp INTEGER PRIMARY KEY,
            percentage REAL,
            status TEXT,
            time_estimate_seconds INTEGER,
            battery_count INTEGER,
            energy_now INTEGER,
            energy_full INTEGER,
            power_now INTEGER
        )
    `)
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}
