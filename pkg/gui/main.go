package gui

import (
	"sync"

	"github.com/getlantern/systray"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/config"
	"github.com/charlie0129/battview/pkg/display"
	"github.com/charlie0129/battview/pkg/observer"
	"github.com/charlie0129/battview/pkg/version"
)

// app ties the observer lifecycle to the tray: it is subscribed while the
// tray is up and not paused.
type app struct {
	mu       sync.Mutex
	observer *observer.Observer
	paused   bool
}

// Run shows the tray icon and blocks until the user quits. It must be
// called from the main goroutine.
func Run(host observer.Registrar, conf config.Config) {
	logrus.WithField("version", version.Version).WithField("gitCommit", version.GitCommit).Info("battview gui")

	a := &app{}
	systray.Run(func() {
		a.onReady(host, conf)
	}, a.onExit)
}

func (a *app) onReady(host observer.Registrar, conf config.Config) {
	labels := conf.Labels()

	systray.SetTitle("🔋 " + labels.NotAvailable)
	systray.SetTooltip("battview - Battery Status")

	mPercentage := systray.AddMenuItem("Battery: "+labels.NotAvailable, "Current battery level")
	mPercentage.Disable()

	mSource := systray.AddMenuItem("Source: "+labels.NotAvailable, "External power source")
	mSource.Disable()

	mStatus := systray.AddMenuItem("Status: "+labels.NotAvailable, "Charging status")
	mStatus.Disable()

	systray.AddSeparator()

	mPause := systray.AddMenuItem("Pause Updates", "Stop listening for battery changes")

	systray.AddSeparator()

	mVersion := systray.AddMenuItem("Version: "+version.Version, "")
	mVersion.Disable()

	mQuit := systray.AddMenuItem("Quit", "Quit battview")

	tray := newTray(labels, systray.SetTitle, mPercentage, mSource, mStatus)
	obs := observer.New(host, display.NewPanel(tray, labels), observer.WithDropStale(conf.DropStaleResults()))

	a.mu.Lock()
	a.observer = obs
	a.mu.Unlock()

	obs.Start()

	go func() {
		for {
			select {
			case <-mPause.ClickedCh:
				if a.togglePause() {
					mPause.SetTitle("Resume Updates")
				} else {
					mPause.SetTitle("Pause Updates")
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

// togglePause stops or restarts the observer and reports whether it is
// now paused.
func (a *app) togglePause() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.observer == nil {
		return a.paused
	}

	a.paused = !a.paused
	if a.paused {
		a.observer.Stop()
	} else {
		a.observer.Start()
	}

	logrus.WithField("paused", a.paused).Info("battery updates toggled")

	return a.paused
}

func (a *app) onExit() {
	a.mu.Lock()
	obs := a.observer
	a.mu.Unlock()

	if obs != nil {
		obs.Stop()
		obs.Wait()
	}

	logrus.Info("battview gui exiting")
}
