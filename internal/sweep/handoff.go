package sweep

import "github.com/nao1215/sweeper/internal/model"

// Handoff carries the latest scan result from the scan action to the
// delete action. It holds at most one result: a newer Offer replaces an
// unconsumed one, and Take hands a result out once.
type Handoff struct {
	ch chan *model.ScanReport
}

// NewHandoff creates an empty Handoff.
func NewHandoff() *Handoff {
	return &Handoff{ch: make(chan *model.ScanReport, 1)}
}

// Offer publishes a scan result, discarding any result not yet taken.
func (h *Handoff) Offer(report *model.ScanReport) {
	for {
		select {
		case h.ch <- report:
			return
		default:
		}
		// Slot is full: drop the stale result and retry.
		select {
		case <-h.ch:
		default:
		}
	}
}

// Take returns the pending result and clears it. The second return value
// is false when nothing is pending.
func (h *Handoff) Take() (*model.ScanReport, bool) {
	select {
	case report := <-h.ch:
		return report, true
	default:
		return nil, false
	}
}

// Discard drops any pending result.
func (h *Handoff) Discard() {
	h.Take()
}
