//go:build !windows

package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/display"
	"github.com/charlie0129/battview/pkg/notify"
)

func TestWatchLoopToggleAndStop(t *testing.T) {
	p := testPipeline(t, fixedSource(notify.Extras{
		notify.ExtraLevel:   30,
		notify.ExtraScale:   100,
		notify.ExtraPlugged: battery.PluggedNone,
		notify.ExtraStatus:  battery.StatusDischarging,
	}))

	sink := display.NewMemory()
	obs := p.newObserver(p.newPanel(sink))
	obs.Start()
	defer func() {
		obs.Stop()
		obs.Wait()
	}()

	select {
	case <-sink.Updated():
	case <-time.After(time.Second):
		t.Fatalf("status not rendered")
	}
	assert.Equal(t, "30.0%", sink.Fields().Percentage)

	sigc := make(chan os.Signal)
	errc := make(chan error)
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(obs, sigc, errc)
	}()

	sigc <- syscall.SIGUSR1
	require.Eventually(t, func() bool { return !obs.Registered() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, p.host.Registrations(notify.ActionBatteryChanged))

	sigc <- syscall.SIGUSR1
	require.Eventually(t, obs.Registered, time.Second, 5*time.Millisecond)

	// Resuming replays the current state.
	select {
	case <-sink.Updated():
	case <-time.After(time.Second):
		t.Fatalf("status not rendered after resume")
	}

	sigc <- syscall.SIGINT
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("watch loop did not return on SIGINT")
	}
}

func TestWatchLoopSourceError(t *testing.T) {
	p := testPipeline(t, silentSource{})
	obs := p.newObserver(p.newPanel(display.NewMemory()))

	errc := make(chan error, 1)
	errc <- errors.New("system bus connection closed")

	err := watchLoop(obs, make(chan os.Signal), errc)
	assert.ErrorContains(t, err, "system bus connection closed")
}
