package matching

import "festivol/pkg/model"

// FindConflict reports the first mission in the working set that would
// double-book the volunteer if they joined the candidate: the volunteer is
// already in its membership and both time windows intersect. Returns nil when
// the assignment is safe. The scan is pure over the snapshot the caller
// supplies; missions without a complete window never conflict.
func FindConflict(candidate *model.Mission, volunteerID string, workingSet []*model.Mission) *model.Mission {
	if !candidate.HasWindow() {
		return nil
	}

	for _, other := range workingSet {
		if other.ID == candidate.ID {
			continue
		}
		if !other.HasWindow() || !other.IsAssigned(volunteerID) {
			continue
		}
		if Overlaps(*candidate.StartTime, *candidate.EndTime, *other.StartTime, *other.EndTime) {
			return other
		}
	}

	return nil
}

// HasConflict is FindConflict reduced to a boolean.
func HasConflict(candidate *model.Mission, volunteerID string, workingSet []*model.Mission) bool {
	return FindConflict(candidate, volunteerID, workingSet) != nil
}
