// Package broadcast: notifikasi "data berubah, baca ulang" antar komponen.
package broadcast

import (
	"sync"
)

const (
	TopicPrograms   = "programs"
	TopicTasks      = "tasks"
	TopicDocuments  = "documents"
	TopicCalendar   = "calendar"
	TopicKPI        = "kpi"
	TopicIndicators = "indicators"
)

// Change hanya memberi tahu di mana perubahan terjadi; listener wajib re-pull state penuh.
type Change struct {
	Topic string // programs | tasks | documents | calendar | kpi | indicators
	Key   string // storage key partisi, kosong = tidak spesifik
}

// Filter: field kosong = wildcard.
type Filter struct {
	Topic string
	Key   string
}

func (f Filter) match(c Change) bool {
	if f.Topic != "" && f.Topic != c.Topic {
		return false
	}
	if f.Key != "" && f.Key != c.Key {
		return false
	}
	return true
}

type Listener func(Change)

type subscription struct {
	id     uint64
	filter Filter
	fn     Listener
}

type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewHub() *Hub { return &Hub{} }

// Subscribe mendaftarkan listener; panggil fungsi hasilnya untuk berhenti.
func (h *Hub) Subscribe(filter Filter, fn Listener) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, filter: filter, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish memanggil listener yang cocok secara sinkron, di luar lock.
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	targets := make([]Listener, 0, len(h.subs))
	for _, s := range h.subs {
		if s.filter.match(c) {
			targets = append(targets, s.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range targets {
		fn(c)
	}
}
