package sqlite

import (
	"strconv"
	"time"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// ─── Achievement Snapshot ───────────────────────────────────────────────────
// The engine defines the snapshot shape; this store is the persistence
// collaborator that keeps it across restarts.

// SaveSnapshot persists the achievement state snapshot.
func (d *DB) SaveSnapshot(snap domain.Snapshot) error {
	for _, ua := range snap.Unlocked {
		_, err := d.db.Exec(
			`INSERT INTO achievements (id, unlocked_at, points, description) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			ua.ID, ua.UnlockedAt.Unix(), ua.Points, ua.Description,
		)
		if err != nil {
			return err
		}
	}

	pairs := map[string]*int{
		"total_points":   snap.TotalPoints,
		"current_streak": snap.CurrentStreak,
		"longest_streak": snap.LongestStreak,
	}
	for key, v := range pairs {
		if v == nil {
			continue
		}
		if err := d.SetEngagement(key, strconv.Itoa(*v)); err != nil {
			return err
		}
	}
	return nil
}

// LoadSnapshot reads the persisted snapshot. Missing values stay nil so the
// manager's partial merge leaves its defaults alone.
func (d *DB) LoadSnapshot() (domain.Snapshot, error) {
	var snap domain.Snapshot

	rows, err := d.db.Query(`SELECT id, unlocked_at, points, description FROM achievements ORDER BY unlocked_at ASC`)
	if err != nil {
		return snap, err
	}
	defer rows.Close()

	for rows.Next() {
		var ua domain.UnlockedAchievement
		var unlockedAt int64
		if err := rows.Scan(&ua.ID, &unlockedAt, &ua.Points, &ua.Description); err != nil {
			return snap, err
		}
		ua.UnlockedAt = time.Unix(unlockedAt, 0)
		snap.Unlocked = append(snap.Unlocked, ua)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	for key, field := range map[string]**int{
		"total_points":   &snap.TotalPoints,
		"current_streak": &snap.CurrentStreak,
		"longest_streak": &snap.LongestStreak,
	} {
		raw, err := d.GetEngagement(key)
		if err != nil {
			return snap, err
		}
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue // Corrupt value — fall back to defaults
		}
		*field = &n
	}

	return snap, nil
}
