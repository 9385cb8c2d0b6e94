package flatbuf

import (
	"sync"

	"github.com/pkg/errors"
)

// budget caps how many tables and vector slots the decodes of one buffer may visit.
// Each of them takes at least one byte of the buffer, so a buffer whose offsets are never
// shared needs at most len(buf) visits. Offsets listed several times are followed every
// time, which without the cap lets a small buffer expand into an exponential tree.
type budget struct {
	left  int
	users int
}

var (
	budgetsMu sync.Mutex
	// keyed by the first byte of the buffer, every view of a buffer carries the whole of it
	budgets = make(map[*byte]*budget)
)

// acquireBudget grants len(buf) visits to a Decode of buf. Concurrent decodes of the same
// buffer pool their grants.
func acquireBudget(buf []byte) (release func()) {
	key := &buf[0]

	budgetsMu.Lock()
	defer budgetsMu.Unlock()

	b, ok := budgets[key]
	if !ok {
		b = new(budget)
		budgets[key] = b
	}
	b.left += len(buf)
	b.users++

	return func() {
		budgetsMu.Lock()
		defer budgetsMu.Unlock()

		if b.users--; b.users == 0 {
			delete(budgets, key)
		}
	}
}

// spend takes n visits from the budget of buf. Views used outside of Decode have no
// budget and are never refused.
func spend(buf []byte, n int) error {
	if len(buf) == 0 || n == 0 {
		return nil
	}

	budgetsMu.Lock()
	defer budgetsMu.Unlock()

	b, ok := budgets[&buf[0]]
	if !ok {
		return nil
	}
	if n > b.left {
		b.left = 0
		return errors.Wrapf(ErrMalformed, "shared offsets expand past %d bytes", len(buf))
	}
	b.left -= n
	return nil
}
