package engine

// EvaluateUnlocks walks the catalog in order and returns the definitions whose
// predicates hold and that are not already in the snapshot's unlocked set.
// Rewards unlocked earlier in the same pass are visible to later predicates.
// Re-evaluating an unchanged snapshot/history yields an empty result; rewards
// are never revoked. The caller merges the returned ids and persists.
func EvaluateUnlocks(s Snapshot, h History) []RewardDefinition {
	have := make(map[string]struct{}, len(s.Unlocked))
	for _, id := range s.Unlocked {
		have[id] = struct{}{}
	}

	var newly []RewardDefinition
	for _, def := range Catalog() {
		if _, ok := have[def.ID]; ok {
			continue
		}
		if def.Predicate(s, h) {
			newly = append(newly, def)
			have[def.ID] = struct{}{}
		}
	}
	return newly
}
