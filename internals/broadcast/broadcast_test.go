package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishMatchesFilters(t *testing.T) {
	h := NewHub()
	var all, programs, duri int

	h.Subscribe(Filter{}, func(Change) { all++ })
	h.Subscribe(Filter{Topic: TopicPrograms}, func(Change) { programs++ })
	h.Subscribe(Filter{Topic: TopicPrograms, Key: "otp/indonesia_duri"}, func(Change) { duri++ })

	h.Publish(Change{Topic: TopicPrograms, Key: "otp/indonesia_duri"})
	h.Publish(Change{Topic: TopicPrograms, Key: "otp/asia"})
	h.Publish(Change{Topic: TopicTasks, Key: "tasks/all"})

	assert.Equal(t, 3, all)
	assert.Equal(t, 2, programs)
	assert.Equal(t, 1, duri)
}

func TestUnsubscribe(t *testing.T) {
	h := NewHub()
	calls := 0
	stop := h.Subscribe(Filter{}, func(Change) { calls++ })

	h.Publish(Change{Topic: TopicTasks})
	stop()
	stop()
	h.Publish(Change{Topic: TopicTasks})

	assert.Equal(t, 1, calls)
}

func TestListenerMayPublish(t *testing.T) {
	h := NewHub()
	var seen []string
	h.Subscribe(Filter{Topic: TopicPrograms}, func(Change) {
		h.Publish(Change{Topic: TopicCalendar})
	})
	h.Subscribe(Filter{}, func(c Change) { seen = append(seen, c.Topic) })

	h.Publish(Change{Topic: TopicPrograms})
	assert.Equal(t, []string{TopicCalendar, TopicPrograms}, seen)
}
