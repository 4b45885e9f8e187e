package diary

import "sync"

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription; calling it more than once
// is harmless.
func (d *Diary) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	d.subMu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	d.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.subMu.Lock()
			delete(d.subs, id)
			d.subMu.Unlock()
		})
	}
}

func (d *Diary) notify(snap Snapshot) {
	d.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(d.subs))
	for _, fn := range d.subs {
		fns = append(fns, fn)
	}
	d.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
