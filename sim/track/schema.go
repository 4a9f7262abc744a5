package track

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current experiment store schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    experiment TEXT NOT NULL,

    topology TEXT NOT NULL,
    nodes INTEGER NOT NULL,
    alpha REAL NOT NULL,
    beta REAL NOT NULL,
    recovery TEXT NOT NULL,
    seed INTEGER NOT NULL,

    started_at TEXT NOT NULL,
    finished_at TEXT,
    finished INTEGER NOT NULL DEFAULT 0,

    steps INTEGER,
    final_susceptible INTEGER,
    final_infected INTEGER,
    final_recovered INTEGER,
    ever_infected_fraction REAL,
    extinct INTEGER,
    epidemic_class TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment);

CREATE TABLE IF NOT EXISTS step_metrics (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    step INTEGER NOT NULL,
    susceptible INTEGER NOT NULL,
    infected INTEGER NOT NULL,
    recovered INTEGER NOT NULL,
    PRIMARY KEY (run_id, step)
);

CREATE TABLE IF NOT EXISTS schema_meta (
    version INTEGER NOT NULL
);
`

// initSchema creates the store tables if they do not exist and stamps
// the schema version.
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_meta`).Scan(&count); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_meta (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("stamping schema version: %w", err)
		}
	}
	return nil
}
