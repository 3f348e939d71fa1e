package report

import "fmt"

// Band classifies a checkpoint for conditional row styling
type Band int

const (
	BandNone Band = iota
	BandOverdue
	BandDueSoon
)

// Checkpoints inside [0, dueSoonWindowDays) render with the due-soon band
const dueSoonWindowDays = 30

// UrgencyText renders the human-readable urgency note for a checkpoint
func UrgencyText(checkpoint int) string {
	switch {
	case checkpoint > 0:
		return fmt.Sprintf("%d days until expiration", checkpoint)
	case checkpoint < 0:
		return fmt.Sprintf("Expired %d days ago", -checkpoint)
	default:
		return "Expires today"
	}
}

// BandFor maps a checkpoint to its status band: negative checkpoints are
// overdue, checkpoints within the due-soon window are due soon, anything
// further out is unbanded
func BandFor(checkpoint int) Band {
	switch {
	case checkpoint < 0:
		return BandOverdue
	case checkpoint < dueSoonWindowDays:
		return BandDueSoon
	default:
		return BandNone
	}
}
