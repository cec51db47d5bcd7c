package db

import (
	"database/sql"
	"fmt"

	"github.com/chriserin/gsteps/internal/parser"
)

// StepRow is a cached step and the number of files it was found in.
type StepRow struct {
	Step  parser.Step
	Files int
}

// TrackFile returns the id of the files row for path, inserting it when
// missing. created reports whether the row is new.
func TrackFile(sqlDB *sql.DB, path string) (id int64, created bool, err error) {
	err = sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("querying %s: %w", path, err)
	}

	res, err := sqlDB.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
	if err != nil {
		return 0, false, fmt.Errorf("inserting %s: %w", path, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading id of %s: %w", path, err)
	}
	return id, true, nil
}

// ReplaceFileSteps replaces the steps linked to a file with steps.
func ReplaceFileSteps(sqlDB *sql.DB, fileID int64, steps []parser.Step) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM step_files WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("clearing steps of file %d: %w", fileID, err)
	}

	for _, st := range steps {
		if _, err := tx.Exec(
			`INSERT INTO steps (category, text) VALUES (?, ?) ON CONFLICT (category, text) DO NOTHING`,
			string(st.Category), st.Text,
		); err != nil {
			return fmt.Errorf("inserting step %q: %w", st.Text, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO step_files (step_id, file_id)
			SELECT id, ? FROM steps WHERE category = ? AND text = ?
			ON CONFLICT DO NOTHING
		`, fileID, string(st.Category), st.Text); err != nil {
			return fmt.Errorf("linking step %q: %w", st.Text, err)
		}
	}

	if _, err := tx.Exec(`UPDATE files SET updated_at = datetime('now') WHERE id = ?`, fileID); err != nil {
		return fmt.Errorf("touching file %d: %w", fileID, err)
	}

	return tx.Commit()
}

// ForgetFilesExcept deletes every tracked file whose path is not in keep
// and returns how many were removed.
func ForgetFilesExcept(sqlDB *sql.DB, keep []string) (int, error) {
	wanted := make(map[string]bool, len(keep))
	for _, p := range keep {
		wanted[p] = true
	}

	rows, err := sqlDB.Query(`SELECT id, file_path FROM files`)
	if err != nil {
		return 0, fmt.Errorf("querying files: %w", err)
	}
	var stale []int64
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning file row: %w", err)
		}
		if !wanted[path] {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating files: %w", err)
	}

	for _, id := range stale {
		if _, err := sqlDB.Exec(`DELETE FROM files WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("deleting file %d: %w", id, err)
		}
	}
	return len(stale), nil
}

// PruneSteps deletes steps no longer linked to any file.
func PruneSteps(sqlDB *sql.DB) (int64, error) {
	res, err := sqlDB.Exec(`DELETE FROM steps WHERE id NOT IN (SELECT step_id FROM step_files)`)
	if err != nil {
		return 0, fmt.Errorf("pruning steps: %w", err)
	}
	return res.RowsAffected()
}

// ListSteps returns the cached steps ordered by category and text. An
// empty category returns every step.
func ListSteps(sqlDB *sql.DB, category parser.Category) ([]StepRow, error) {
	rows, err := sqlDB.Query(`
		SELECT s.category, s.text, COUNT(sf.file_id)
		FROM steps s
		LEFT JOIN step_files sf ON sf.step_id = s.id
		WHERE ? = '' OR s.category = ?
		GROUP BY s.id
		ORDER BY CASE s.category
			WHEN 'given' THEN 0
			WHEN 'when' THEN 1
			WHEN 'then' THEN 2
			ELSE 3
		END, s.text
	`, string(category), string(category))
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	var out []StepRow
	for rows.Next() {
		var r StepRow
		var cat string
		if err := rows.Scan(&cat, &r.Step.Text, &r.Files); err != nil {
			return nil, fmt.Errorf("scanning step row: %w", err)
		}
		r.Step.Category = parser.Category(cat)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steps: %w", err)
	}
	return out, nil
}
