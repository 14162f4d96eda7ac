package sqlxrepos

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uuidArray adapts a list of UUIDs for `= ANY($n::uuid[])` clauses.
func uuidArray(ids []uuid.UUID) interface{} {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	return pq.Array(strs)
}
