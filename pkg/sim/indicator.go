package sim

import (
	"log"
	"sync"

	"github.com/itohio/launchscope/pkg/capture"
)

// Indicator logs status light changes in place of board LEDs. Repeated
// requests for the state a light is already in are not logged.
type Indicator struct {
	mu  sync.Mutex
	lit map[capture.LED]bool
}

var _ capture.Indicator = (*Indicator)(nil)

func (i *Indicator) On(l capture.LED) {
	if i.set(l, true) {
		log.Printf("LED %v on", l)
	}
}

func (i *Indicator) Off(l capture.LED) {
	if i.set(l, false) {
		log.Printf("LED %v off", l)
	}
}

// Lit reports whether l is on.
func (i *Indicator) Lit(l capture.LED) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lit[l]
}

func (i *Indicator) set(l capture.LED, on bool) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.lit == nil {
		i.lit = make(map[capture.LED]bool)
	}
	if i.lit[l] == on {
		return false
	}
	i.lit[l] = on
	return true
}
