package service

import "github.com/google/uuid"

// parseIDs converts id strings to UUIDs, skipping unparseable entries.
// Connect/disconnect semantics silently ignore ids that resolve to nothing,
// and a malformed id resolves to nothing.
func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
