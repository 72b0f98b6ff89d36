package breakpoint

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		width int
		want  Breakpoint
	}{
		{-1, Narrow},
		{0, Narrow},
		{375, Narrow},
		{767, Narrow},
		{768, Medium},
		{1279, Medium},
		{1280, Wide},
		{2560, Wide},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultThresholds.Classify(tt.width), "width %d", tt.width)
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 2, Narrow.Columns())
	assert.Equal(t, 3, Medium.Columns())
	assert.Equal(t, 4, Wide.Columns())
	assert.Equal(t, "wide", Wide.String())
}

func TestNewObserver_UnmeasurableDefaultsToNarrow(t *testing.T) {
	o := NewObserver(0)
	assert.Equal(t, Narrow, o.Current())
}

func TestNewObserver_CustomThresholds(t *testing.T) {
	o := NewObserver(1100, WithThresholds(Thresholds{Medium: 1024, Wide: 1280}))
	assert.Equal(t, Medium, o.Current())
}

type recorder struct {
	mu  sync.Mutex
	got []Breakpoint
}

func (r *recorder) record(b Breakpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, b)
}

func (r *recorder) events() []Breakpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Breakpoint(nil), r.got...)
}

func TestObserver_NotifiesOnlyOnBucketChange(t *testing.T) {
	o := NewObserver(400)
	rec := &recorder{}
	o.Subscribe(rec.record)

	o.Resize(500)
	o.Resize(700)
	o.Resize(900)
	o.Resize(1000)
	o.Resize(1400)
	o.Resize(1500)
	o.Resize(300)

	assert.Equal(t, []Breakpoint{Medium, Wide, Narrow}, rec.events())
	assert.Equal(t, 300, o.Width())
}

func TestObserver_Unsubscribe(t *testing.T) {
	o := NewObserver(400)
	rec := &recorder{}
	unsubscribe := o.Subscribe(rec.record)

	o.Resize(900)
	unsubscribe()
	o.Resize(1400)

	assert.Equal(t, []Breakpoint{Medium}, rec.events())
	assert.Equal(t, Wide, o.Current())
}

func TestObserver_DebounceCollapsesBurst(t *testing.T) {
	o := NewObserver(400, WithDebounce(20*time.Millisecond))
	rec := &recorder{}
	o.Subscribe(rec.record)

	for w := 400; w <= 1400; w += 50 {
		o.Resize(w)
	}
	assert.Equal(t, Narrow, o.Current(), "nothing applied before the burst settles")

	require.Eventually(t, func() bool {
		return o.Current() == Wide
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []Breakpoint{Wide}, rec.events())
}

func TestObserver_FlushAppliesPending(t *testing.T) {
	o := NewObserver(400, WithDebounce(time.Hour))
	rec := &recorder{}
	o.Subscribe(rec.record)

	o.Resize(1000)
	assert.Equal(t, Narrow, o.Current())

	o.Flush()
	assert.Equal(t, Medium, o.Current())
	assert.Equal(t, []Breakpoint{Medium}, rec.events())

	o.Flush()
	assert.Len(t, rec.events(), 1)
}

func TestObserver_StopCancelsPending(t *testing.T) {
	o := NewObserver(400, WithDebounce(time.Hour))
	rec := &recorder{}
	o.Subscribe(rec.record)

	o.Resize(1400)
	o.Stop()
	o.Flush()
	o.Resize(1400)

	assert.Equal(t, Narrow, o.Current())
	assert.Empty(t, rec.events())
}

func TestObserver_OverlappingAppliesNotifyInOrder(t *testing.T) {
	o := NewObserver(400)

	var (
		mu    sync.Mutex
		calls int
		last  Breakpoint
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	o.Subscribe(func(b Breakpoint) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
		}
		mu.Lock()
		last = b
		mu.Unlock()
	})

	wide := make(chan struct{})
	go func() {
		o.Resize(1400)
		close(wide)
	}()
	<-entered

	narrow := make(chan struct{})
	go func() {
		o.Resize(300)
		close(narrow)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-wide
	<-narrow

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, Narrow, o.Current())
	assert.Equal(t, o.Current(), last)
	assert.Equal(t, 2, calls)
}
