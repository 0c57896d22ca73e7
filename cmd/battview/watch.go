package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battview/pkg/display"
)

// lifecycle is the part of *observer.Observer the watch loop drives.
type lifecycle interface {
	Start()
	Stop()
	Registered() bool
}

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Show battery status in the terminal as it changes",
		GroupID: gBasic,
		Long: `Show battery status in the terminal as it changes.

The status line is redrawn whenever the battery level, power source or
charging status changes. Send SIGUSR1 to pause or resume updates.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context())
		},
	}
}

func runWatch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	obs := p.newObserver(p.newPanel(display.NewTerminal(os.Stdout, p.conf.Labels())))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, append([]os.Signal{syscall.SIGINT, syscall.SIGTERM}, toggleSignals...)...)
	defer signal.Stop(sigc)

	obs.Start()
	defer func() {
		obs.Stop()
		obs.Wait()
		fmt.Println()
	}()

	return watchLoop(obs, sigc, p.Err())
}

// watchLoop pauses or resumes obs on toggle signals. It returns on any
// other signal, or with the source error once the source stops.
func watchLoop(obs lifecycle, sigc <-chan os.Signal, errc <-chan error) error {
	for {
		select {
		case sig := <-sigc:
			if isToggleSignal(sig) {
				if obs.Registered() {
					obs.Stop()
					logrus.Info("battery updates paused")
				} else {
					obs.Start()
					logrus.Info("battery updates resumed")
				}
				continue
			}
			logrus.WithField("signal", sig).Debug("received signal, exiting")
			return nil
		case err := <-errc:
			return err
		}
	}
}

func isToggleSignal(sig os.Signal) bool {
	for _, s := range toggleSignals {
		if s == sig {
			return true
		}
	}
	return false
}
