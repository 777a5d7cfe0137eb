package worldevent

import "github.com/jynba/worldline/internal/domain"

// MapChange translates a tracker status transition into a narrative event
// id. It is pure: the same change always maps to the same id. The second
// return is false for transitions with no narrative meaning.
func MapChange(change domain.StatusChange) (string, bool) {
	switch change.Kind {
	case domain.KindBug:
		if change.To == StatusBugResolved {
			return EventBugFixed, true
		}
		for _, s := range bugReopenedStatuses {
			if change.To == s {
				return EventBugReopened, true
			}
		}
	case domain.KindStory:
		from := progressIndex(change.From)
		to := progressIndex(change.To)
		if from >= 0 && to >= 0 && to < from {
			return EventStoryRollback, true
		}
	}
	return "", false
}

func progressIndex(status string) int {
	for i, s := range storyProgressOrder {
		if s == status {
			return i
		}
	}
	return -1
}
