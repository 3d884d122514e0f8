package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/prudhvinik1/odoosync/internal/database"
)

// Keeps each DELETE well under SQLite's bound-parameter limit.
const pruneBatchSize = 500

// pruneMissing removes rows of table whose remote_id is absent from keep.
// An empty keep set empties the table. table is always a package constant.
func pruneMissing(ctx context.Context, q database.Querier, dialect database.Dialect, table string, keep []int64) (int64, error) {
	local, err := listRemoteIDs(ctx, q, table)
	if err != nil {
		return 0, err
	}

	keepSet := make(map[int64]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}

	var stale []any
	for _, id := range local {
		if _, ok := keepSet[id]; !ok {
			stale = append(stale, id)
		}
	}

	var deleted int64
	for start := 0; start < len(stale); start += pruneBatchSize {
		end := min(start+pruneBatchSize, len(stale))
		batch := stale[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(batch)), ", ")
		query := fmt.Sprintf("DELETE FROM %s WHERE remote_id IN (%s)", table, placeholders)

		result, err := q.ExecContext(ctx, database.Rebind(dialect, query), batch...)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete stale rows: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return deleted, fmt.Errorf("failed to count deleted rows: %w", err)
		}
		deleted += n
	}

	return deleted, nil
}

func listRemoteIDs(ctx context.Context, q database.Querier, table string) ([]int64, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("SELECT remote_id FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("failed to query remote ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan remote id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating remote ids: %w", err)
	}
	return ids, nil
}
