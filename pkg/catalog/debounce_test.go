package catalog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recorder collects committed values in order.
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) commit(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_BurstCommitsOnlyFinalValue(t *testing.T) {
	rec := &recorder{}
	deb := NewDebouncer(60*time.Millisecond, rec.commit)
	defer deb.Stop()

	for _, v := range []string{"C", "Ca", "Can"} {
		deb.Update(v)
		time.Sleep(15 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{"Can"}, rec.snapshot())
}

func TestDebouncer_SeparatedUpdatesEachCommit(t *testing.T) {
	rec := &recorder{}
	deb := NewDebouncer(20*time.Millisecond, rec.commit)
	defer deb.Stop()

	deb.Update("first")
	time.Sleep(80 * time.Millisecond)
	deb.Update("second")
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	rec := &recorder{}
	deb := NewDebouncer(30*time.Millisecond, rec.commit)

	deb.Update("doomed")
	deb.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// Updates after Stop are discarded too.
	deb.Update("late")
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_FlushCommitsImmediately(t *testing.T) {
	rec := &recorder{}
	deb := NewDebouncer(time.Hour, rec.commit)
	defer deb.Stop()

	deb.Update("now")
	deb.Flush()

	assert.Equal(t, []string{"now"}, rec.snapshot())

	// A flush with nothing pending is a no-op.
	deb.Flush()
	assert.Equal(t, []string{"now"}, rec.snapshot())
}

func TestDebouncer_DefaultDelayApplied(t *testing.T) {
	deb := NewDebouncer(0, func(string) {})
	defer deb.Stop()
	assert.Equal(t, DefaultDebounce, deb.delay)
}
