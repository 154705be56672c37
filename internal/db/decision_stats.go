package db

import "context"

// DecisionStat is one row of the decision counter table.
type DecisionStat struct {
	Decision string
	Count    int64
}

// IncrementDecisionStat bumps the counter for a request decision outcome.
func (d *DB) IncrementDecisionStat(ctx context.Context, decision string) error {
	query := `
		INSERT INTO decision_stats (decision, count)
		VALUES ($1, 1)
		ON CONFLICT (decision) DO UPDATE SET count = decision_stats.count + 1
	`
	_, err := d.Pool.Exec(ctx, query, decision)
	return err
}

// GetDecisionStats returns all decision counters.
func (d *DB) GetDecisionStats(ctx context.Context) ([]DecisionStat, error) {
	rows, err := d.Pool.Query(ctx, `SELECT decision, count FROM decision_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DecisionStat
	for rows.Next() {
		var s DecisionStat
		if err := rows.Scan(&s.Decision, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
