package calendar

import "github.com/jinzhu/copier"

// MergeFields overlays patch onto original: fields present (non-empty) in
// patch win, everything else keeps the original's value. Used when the agent
// supplies a partial update and the stored event fills the gaps.
func MergeFields(original, patch CalendarEvent) CalendarEvent {
	merged := original
	// IgnoreEmpty leaves original fields alone wherever patch has a zero value.
	if err := copier.CopyWithOption(&merged, &patch, copier.Option{IgnoreEmpty: true}); err != nil {
		return original
	}
	merged.ID = original.ID
	if patch.ID != "" {
		merged.ID = patch.ID
	}
	return merged
}
