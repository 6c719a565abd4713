package reconcile

import "fmt"

// NoScheduleMessage is shown when no candidate survived extraction.
const NoScheduleMessage = "⚠️ No schedulable information was detected in your message."

// StatusLine renders the one-line outcome appended to the narrative.
func (s Summary) StatusLine() string {
	added, updated, failed := len(s.Inserted), len(s.Updated), len(s.Failed)
	switch {
	case s.Candidates == 0:
		return NoScheduleMessage
	case failed == 0:
		return fmt.Sprintf("✅ Schedule saved: %d added, %d updated.", added, updated)
	case added+updated == 0:
		return fmt.Sprintf("❌ Could not save any schedule entry (%d failed).", failed)
	default:
		return fmt.Sprintf("⚠️ Schedule partly saved: %d added, %d updated, %d failed.", added, updated, failed)
	}
}
