package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// ─── Activity Log ───────────────────────────────────────────────────────────

// LogFood appends a food entry under the given effective date. A missing ID
// is assigned.
func (d *DB) LogFood(date string, entry domain.FoodEntry) (domain.FoodEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := d.ensureDay(date); err != nil {
		return entry, err
	}
	_, err := d.db.Exec(
		`INSERT INTO food_entries (id, date, name, calories, logged_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, date, entry.Name, entry.Calories, time.Now().Unix(),
	)
	if err != nil {
		return entry, fmt.Errorf("insert food entry: %w", err)
	}
	return entry, nil
}

// LogExercise appends an exercise entry under the given effective date.
func (d *DB) LogExercise(date string, entry domain.ExerciseEntry) (domain.ExerciseEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := d.ensureDay(date); err != nil {
		return entry, err
	}
	_, err := d.db.Exec(
		`INSERT INTO exercise_entries (id, date, name, calories_burned, logged_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, date, entry.Name, entry.CaloriesBurned, time.Now().Unix(),
	)
	if err != nil {
		return entry, fmt.Errorf("insert exercise entry: %w", err)
	}
	return entry, nil
}

// AddWater adds milliliters to the given effective date's intake.
func (d *DB) AddWater(date string, ml int) error {
	if ml < 0 {
		return fmt.Errorf("water amount must be non-negative, got %d", ml)
	}
	_, err := d.db.Exec(
		`INSERT INTO activity_days (date, water_ml) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET water_ml = water_ml + excluded.water_ml`,
		date, ml,
	)
	if err != nil {
		return fmt.Errorf("add water: %w", err)
	}
	return nil
}

// CheckIn makes sure the day exists in the log without adding entries.
func (d *DB) CheckIn(date string) error {
	return d.ensureDay(date)
}

// History returns the full activity log ordered by date ascending.
func (d *DB) History() ([]domain.ActivityLog, error) {
	rows, err := d.db.Query(`SELECT date, water_ml FROM activity_days ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var history []domain.ActivityLog
	index := make(map[string]int)
	for rows.Next() {
		var log domain.ActivityLog
		if err := rows.Scan(&log.Date, &log.WaterML); err != nil {
			return nil, err
		}
		index[log.Date] = len(history)
		history = append(history, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := d.loadFoods(history, index); err != nil {
		return nil, err
	}
	if err := d.loadExercises(history, index); err != nil {
		return nil, err
	}
	return history, nil
}

func (d *DB) loadFoods(history []domain.ActivityLog, index map[string]int) error {
	rows, err := d.db.Query(`SELECT id, date, name, calories FROM food_entries ORDER BY logged_at ASC`)
	if err != nil {
		return fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.FoodEntry
		var date string
		if err := rows.Scan(&e.ID, &date, &e.Name, &e.Calories); err != nil {
			return err
		}
		if i, ok := index[date]; ok {
			history[i].Foods = append(history[i].Foods, e)
		}
	}
	return rows.Err()
}

func (d *DB) loadExercises(history []domain.ActivityLog, index map[string]int) error {
	rows, err := d.db.Query(`SELECT id, date, name, calories_burned FROM exercise_entries ORDER BY logged_at ASC`)
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.ExerciseEntry
		var date string
		if err := rows.Scan(&e.ID, &date, &e.Name, &e.CaloriesBurned); err != nil {
			return err
		}
		if i, ok := index[date]; ok {
			history[i].Exercises = append(history[i].Exercises, e)
		}
	}
	return rows.Err()
}

// ensureDay upserts the day row so entries always have a parent day.
func (d *DB) ensureDay(date string) error {
	_, err := d.db.Exec(`INSERT OR IGNORE INTO activity_days (date, water_ml) VALUES (?, 0)`, date)
	if err != nil {
		return fmt.Errorf("ensure day: %w", err)
	}
	return nil
}
