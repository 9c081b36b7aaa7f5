package model

// GoalStatus is a human-friendly health label for a goal.
// Keep these values stable; they are part of the API output.
type GoalStatus string

const (
	StatusAchieved       GoalStatus = "achieved"
	StatusOnTrack        GoalStatus = "on_track"
	StatusNeedsAttention GoalStatus = "needs_attention"
)

// onTrackRatio is the saved share above which a goal counts as on track.
const onTrackRatio = 0.6

func StatusFromProgress(current, target float64) GoalStatus {
	switch {
	case target <= 0:
		return StatusNeedsAttention
	case current >= target:
		return StatusAchieved
	case current/target > onTrackRatio:
		return StatusOnTrack
	default:
		return StatusNeedsAttention
	}
}
