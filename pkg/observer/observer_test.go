package observer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
)

type countingRegistrar struct {
	*notify.Host

	mu           sync.Mutex
	registered   int
	unregistered int
}

func (c *countingRegistrar) Register(action string, r notify.Receiver) (*notify.Registration, notify.Notification, bool) {
	c.mu.Lock()
	c.registered++
	c.mu.Unlock()
	return c.Host.Register(action, r)
}

func (c *countingRegistrar) Unregister(reg *notify.Registration) {
	c.mu.Lock()
	c.unregistered++
	c.mu.Unlock()
	c.Host.Unregister(reg)
}

func statusChan() (chan battery.Status, StatusHandlerFunc) {
	ch := make(chan battery.Status, 16)
	return ch, func(s battery.Status) { ch <- s }
}

func waitStatus(t *testing.T, ch chan battery.Status) battery.Status {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatalf("no status rendered in time")
	}
	return battery.Status{}
}

func charging(level int) notify.Notification {
	return notify.Notification{
		Action: notify.ActionBatteryChanged,
		Extras: notify.Extras{
			notify.ExtraLevel:   level,
			notify.ExtraScale:   100,
			notify.ExtraPlugged: battery.PluggedAC,
			notify.ExtraStatus:  battery.StatusCharging,
		},
	}
}

func TestStartReplaysStickyState(t *testing.T) {
	host := notify.NewHost(time.Second)
	defer host.Close()
	host.Publish(charging(50))

	ch, handler := statusChan()
	o := New(host, handler)
	o.Start()
	defer o.Stop()

	s := waitStatus(t, ch)
	assert.Equal(t, 50, s.LevelRaw)
	assert.Equal(t, battery.SourceAC, s.Source)
	assert.Equal(t, battery.StateCharging, s.State)
}

func TestStartIsIdempotent(t *testing.T) {
	host := &countingRegistrar{Host: notify.NewHost(time.Second)}
	defer host.Close()

	ch, handler := statusChan()
	o := New(host, handler)
	o.Start()
	o.Start()
	defer o.Stop()

	assert.Equal(t, 1, host.registered)
	assert.Equal(t, 1, host.Registrations(notify.ActionBatteryChanged))

	host.Publish(charging(10))
	waitStatus(t, ch)

	select {
	case s := <-ch:
		t.Fatalf("status rendered twice: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopWithoutStart(t *testing.T) {
	host := &countingRegistrar{Host: notify.NewHost(time.Second)}
	defer host.Close()

	o := New(host, StatusHandlerFunc(func(battery.Status) {}))
	assert.NotPanics(t, o.Stop)
	assert.NotPanics(t, o.Stop)
	assert.Equal(t, 0, host.unregistered)
	assert.False(t, o.Registered())
}

func TestStartStopStart(t *testing.T) {
	host := notify.NewHost(time.Second)
	defer host.Close()

	ch, handler := statusChan()
	o := New(host, handler)

	o.Start()
	require.True(t, o.Registered())
	o.Stop()
	require.False(t, o.Registered())
	assert.Equal(t, 0, host.Registrations(notify.ActionBatteryChanged))

	host.Publish(charging(20))
	o.Start()
	defer o.Stop()

	assert.Equal(t, 20, waitStatus(t, ch).LevelRaw)
}

func TestStopWaitWhilePublishing(t *testing.T) {
	host := notify.NewHost(time.Second)
	defer host.Close()

	var busy atomic.Int32
	o := New(host, StatusHandlerFunc(func(battery.Status) {
		busy.Add(1)
		defer busy.Add(-1)
		time.Sleep(50 * time.Microsecond)
	}))

	for i := 0; i < 200; i++ {
		o.Start()

		stop := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			for j := 0; ; j++ {
				select {
				case <-stop:
					return
				default:
				}
				host.Publish(charging(j % 100))
			}
		}()

		time.Sleep(time.Millisecond)
		o.Stop()
		o.Wait()

		if n := busy.Load(); n != 0 {
			t.Fatalf("iteration %d: %d handlers still running after Stop and Wait", i, n)
		}

		close(stop)
		<-done
	}
}

func TestOnNotificationFinishesResult(t *testing.T) {
	release := make(chan struct{})
	o := New(nil, StatusHandlerFunc(func(battery.Status) {
		<-release
	}))

	result := notify.NewPendingResult()
	done := make(chan struct{})
	go func() {
		o.OnNotification(charging(1), result)
		close(done)
	}()

	// OnNotification must return while the handler is still blocked.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("OnNotification blocked the delivering goroutine")
	}
	assert.False(t, result.Finished())

	close(release)
	select {
	case <-result.Done():
	case <-time.After(time.Second):
		t.Fatalf("result not finished after the handler returned")
	}
}

func TestOnNotificationFinishesResultOnPanic(t *testing.T) {
	o := New(nil, StatusHandlerFunc(func(battery.Status) {
		panic("display is gone")
	}))

	result := notify.NewPendingResult()
	o.OnNotification(charging(1), result)
	o.Wait()

	assert.True(t, result.Finished())
}

func TestOnNotificationIgnoresOtherActions(t *testing.T) {
	called := false
	o := New(nil, StatusHandlerFunc(func(battery.Status) { called = true }))

	result := notify.NewPendingResult()
	o.OnNotification(notify.Notification{Action: "screen.off"}, result)
	o.Wait()

	assert.False(t, called)
	assert.True(t, result.Finished())
}

func TestMalformedNotification(t *testing.T) {
	ch, handler := statusChan()
	o := New(nil, handler)

	result := notify.NewPendingResult()
	o.OnNotification(notify.Notification{Action: notify.ActionBatteryChanged}, result)
	o.Wait()

	s := waitStatus(t, ch)
	_, ok := s.Percentage()
	assert.False(t, ok)
	assert.False(t, s.HasSource())
	assert.False(t, s.HasState())
	assert.True(t, result.Finished())
}

func TestDropStale(t *testing.T) {
	tests := []struct {
		name      string
		dropStale bool
		want      bool
	}{
		{name: "keep stale results", dropStale: false, want: true},
		{name: "drop stale results", dropStale: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := notify.NewHost(time.Second)
			defer host.Close()

			var rendered bool
			o := New(host, StatusHandlerFunc(func(battery.Status) { rendered = true }), WithDropStale(tt.dropStale))
			o.Start()
			o.Stop()

			// A notification whose worker only runs after Stop.
			result := notify.NewPendingResult()
			o.OnNotification(charging(5), result)
			o.Wait()

			assert.Equal(t, tt.want, rendered)
			assert.True(t, result.Finished())
		})
	}
}
