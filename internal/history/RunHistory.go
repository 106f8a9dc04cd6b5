package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Mshel/micromouse/internal/maze"
)

const tableName = "runs"

// Run is one finished simulation.
type Run struct {
	ID        int
	Layout    string
	Finder    string
	Steps     int
	Crashes   int
	FinalX    int
	FinalY    int
	Heading   string
	CreatedAt time.Time
}

// NewRun fills a Run from the result of maze.Run.
func NewRun(layout, finder string, result maze.RunResult) Run {
	return Run{
		Layout:  layout,
		Finder:  finder,
		Steps:   result.Steps,
		Crashes: result.Crashes,
		FinalX:  result.FinalX,
		FinalY:  result.FinalY,
		Heading: result.FinalHeading.String(),
	}
}

type RunHistoryService struct {
	db *sql.DB
}

func NewRunHistoryService(dbPath string) (*RunHistoryService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history %s: %w", dbPath, err)
	}
	// one writer at a time keeps sqlite happy
	db.SetMaxOpenConns(1)

	service := &RunHistoryService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return service, nil
}

// createTable creates the runs table if it does not exist.
func (serviceImpl *RunHistoryService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		layout TEXT NOT NULL,
		finder TEXT NOT NULL,
		steps INTEGER NOT NULL,
		crashes INTEGER NOT NULL,
		final_x INTEGER NOT NULL,
		final_y INTEGER NOT NULL,
		heading TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Run history table ensured.")
	return nil
}

// SaveRun stores run and returns its id.
func (serviceImpl *RunHistoryService) SaveRun(run Run) (int, error) {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (layout, finder, steps, crashes, final_x, final_y, heading)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	res, err := serviceImpl.db.Exec(insertSQL,
		run.Layout, run.Finder, run.Steps, run.Crashes, run.FinalX, run.FinalY, run.Heading)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run on %s: %w", run.Layout, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return int(id), nil
}

// GetRuns retrieves a page of runs, newest first.
func (serviceImpl *RunHistoryService) GetRuns(limit, offset int) ([]Run, error) {
	const selectSQL = `
	SELECT id, layout, finder, steps, crashes, final_x, final_y, heading, created_at
	FROM ` + tableName + `
	ORDER BY id DESC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.ID, &run.Layout, &run.Finder, &run.Steps, &run.Crashes,
			&run.FinalX, &run.FinalY, &run.Heading, &run.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return runs, nil
}

func (serviceImpl *RunHistoryService) GetTotalRunCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total run count: %w", err)
	}
	return count, nil
}

func (serviceImpl *RunHistoryService) Close() error {
	return serviceImpl.db.Close()
}
