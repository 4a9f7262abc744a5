// Package track persists simulation runs and their metrics to a SQLite
// experiment store, so parameter sweeps can be analyzed and resumed
// across processes. The core never imports this package; it is wired in
// purely as a sim.Callback.
package track

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/contagion-sim/contagion-sim/sim"
)

// Store is a SQLite-backed experiment store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the experiment store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening experiment store: %w", err)
	}
	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Run is one recorded simulation run.
type Run struct {
	ID         string
	Experiment string

	Topology string
	Nodes    int
	Alpha    float64
	Beta     float64
	Recovery string
	Seed     int64

	StartedAt  time.Time
	FinishedAt time.Time
	Finished   bool

	Steps                int
	FinalSusceptible     int
	FinalInfected        int
	FinalRecovered       int
	EverInfectedFraction float64
	Extinct              bool
	EpidemicClass        string
}

// CreateRun records the start of a run and returns its generated id.
func (s *Store) CreateRun(experiment string, topo sim.Topology, p *sim.Params) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO runs (id, experiment, topology, nodes, alpha, beta, recovery, seed, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, experiment, topo.Kind(), topo.NumNodes(), p.Alpha, p.Beta, p.Recovery.String(), p.Seed,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("creating run: %w", err)
	}
	return id, nil
}

// FinishRun records the terminal summary of a run.
func (s *Store) FinishRun(id string, summary *sim.Summary) error {
	res, err := s.db.Exec(`
		UPDATE runs SET finished = 1, finished_at = ?, steps = ?,
			final_susceptible = ?, final_infected = ?, final_recovered = ?,
			ever_infected_fraction = ?, extinct = ?, epidemic_class = ?
		WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), summary.Steps,
		summary.Susceptible, summary.Infected, summary.Recovered,
		summary.EverInfectedFraction, boolInt(summary.Extinct), string(summary.EpidemicClass),
		id)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finishing run: unknown run id %s", id)
	}
	return nil
}

// AppendStep records the compartment counts of one step of a run.
func (s *Store) AppendStep(runID string, f *sim.Frame) error {
	susceptible, infected, recovered := f.Counts()
	_, err := s.db.Exec(`
		INSERT INTO step_metrics (run_id, step, susceptible, infected, recovered)
		VALUES (?, ?, ?, ?, ?)`,
		runID, f.Time, susceptible, infected, recovered)
	if err != nil {
		return fmt.Errorf("recording step %d of run %s: %w", f.Time, runID, err)
	}
	return nil
}

// ListRuns returns all runs of an experiment, oldest first. An empty
// experiment name lists every run in the store.
func (s *Store) ListRuns(experiment string) ([]Run, error) {
	query := `
		SELECT id, experiment, topology, nodes, alpha, beta, recovery, seed,
			started_at, COALESCE(finished_at, ''), finished,
			COALESCE(steps, 0), COALESCE(final_susceptible, 0), COALESCE(final_infected, 0),
			COALESCE(final_recovered, 0), COALESCE(ever_infected_fraction, 0),
			COALESCE(extinct, 0), COALESCE(epidemic_class, '')
		FROM runs`
	args := []any{}
	if experiment != "" {
		query += ` WHERE experiment = ?`
		args = append(args, experiment)
	}
	query += ` ORDER BY started_at`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, finishedAt string
		var finished, extinct int
		if err := rows.Scan(&r.ID, &r.Experiment, &r.Topology, &r.Nodes, &r.Alpha, &r.Beta,
			&r.Recovery, &r.Seed, &startedAt, &finishedAt, &finished,
			&r.Steps, &r.FinalSusceptible, &r.FinalInfected, &r.FinalRecovered,
			&r.EverInfectedFraction, &extinct, &r.EpidemicClass); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		if finishedAt != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt)
		}
		r.Finished = finished != 0
		r.Extinct = extinct != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountRuns returns the number of finished runs of an experiment. An
// empty experiment name counts every finished run in the store.
func (s *Store) CountRuns(experiment string) (int, error) {
	query := `SELECT COUNT(*) FROM runs WHERE finished = 1`
	args := []any{}
	if experiment != "" {
		query += ` AND experiment = ?`
		args = append(args, experiment)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// DeleteUnfinished removes runs that never reached FinishRun (crashed or
// interrupted sweeps) and returns how many were deleted. An empty
// experiment name prunes every experiment in the store.
func (s *Store) DeleteUnfinished(experiment string) (int, error) {
	query := `DELETE FROM runs WHERE finished = 0`
	args := []any{}
	if experiment != "" {
		query += ` AND experiment = ?`
		args = append(args, experiment)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting unfinished runs: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// StepHistory returns the recorded per-step compartment counts of a run.
func (s *Store) StepHistory(runID string) ([]StepCounts, error) {
	rows, err := s.db.Query(`
		SELECT step, susceptible, infected, recovered
		FROM step_metrics WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading step history: %w", err)
	}
	defer rows.Close()

	var history []StepCounts
	for rows.Next() {
		var sc StepCounts
		if err := rows.Scan(&sc.Step, &sc.Susceptible, &sc.Infected, &sc.Recovered); err != nil {
			return nil, fmt.Errorf("scanning step history: %w", err)
		}
		history = append(history, sc)
	}
	return history, rows.Err()
}

// StepCounts is one row of a run's per-step history.
type StepCounts struct {
	Step        int
	Susceptible int
	Infected    int
	Recovered   int
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
