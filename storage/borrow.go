package storage

import "fmt"

// borrowFlag tracks runtime borrow state for a single column or resource
// slot. The world is single-threaded, so this is plain bookkeeping: shared
// borrows stack, an exclusive borrow excludes everything else. A conflict is
// a programming error in the calling systems and fails loudly.
type borrowFlag struct {
	readers   int
	exclusive bool
}

func (b *borrowFlag) acquireShared(what string) {
	if b.exclusive {
		panic(fmt.Sprintf("tecs: %s is exclusively borrowed", what))
	}
	b.readers++
}

func (b *borrowFlag) releaseShared() {
	if b.readers > 0 {
		b.readers--
	}
}

func (b *borrowFlag) acquireExclusive(what string) {
	if b.exclusive || b.readers > 0 {
		panic(fmt.Sprintf("tecs: %s is already borrowed", what))
	}
	b.exclusive = true
}

func (b *borrowFlag) releaseExclusive() {
	b.exclusive = false
}

func (b *borrowFlag) idle() bool {
	return !b.exclusive && b.readers == 0
}

// Borrow is a standalone borrow slot for state that lives outside a column,
// such as a world resource.
type Borrow struct {
	what string
	flag borrowFlag
}

// NewBorrow creates an idle borrow slot; what names the guarded value in
// conflict panics.
func NewBorrow(what string) *Borrow {
	return &Borrow{what: what}
}

func (b *Borrow) AcquireShared()    { b.flag.acquireShared(b.what) }
func (b *Borrow) ReleaseShared()    { b.flag.releaseShared() }
func (b *Borrow) AcquireExclusive() { b.flag.acquireExclusive(b.what) }
func (b *Borrow) ReleaseExclusive() { b.flag.releaseExclusive() }

// Idle reports whether no borrow is outstanding.
func (b *Borrow) Idle() bool { return b.flag.idle() }
