package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/display"
)

type statusJSON struct {
	Display display.Fields `json:"display"`
	Battery battery.Status `json:"battery"`
}

// renderedStatus renders to a Memory sink and keeps the status the sink's
// fields were rendered from.
type renderedStatus struct {
	mu     sync.Mutex
	sink   *display.Memory
	panel  *display.Panel
	status battery.Status
}

func (r *renderedStatus) HandleStatus(s battery.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = s
	r.panel.HandleStatus(s)
}

func (r *renderedStatus) snapshot() statusJSON {
	r.mu.Lock()
	defer r.mu.Unlock()
	return statusJSON{
		Display: r.sink.Fields(),
		Battery: r.status,
	}
}

func NewStatusCommand() *cobra.Command {
	var (
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Print the current battery status once",
		GroupID: gBasic,
		Long: `Print the current battery status once.

The first reading from the battery source is rendered and printed, then
battview exits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPipeline(context.Background())
			if err != nil {
				return err
			}
			defer p.Close()

			out, err := readStatus(p, timeout)
			if err != nil {
				return err
			}

			return printStatus(cmd.OutOrStdout(), out, asJSON)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "output in JSON format")
	f.DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for the first battery status")

	return cmd
}

// readStatus observes p until the first status is rendered.
func readStatus(p *pipeline, timeout time.Duration) (statusJSON, error) {
	sink := display.NewMemory()
	r := &renderedStatus{sink: sink, panel: p.newPanel(sink)}

	obs := p.newObserver(r)
	obs.Start()
	defer func() {
		obs.Stop()
		obs.Wait()
	}()

	select {
	case <-sink.Updated():
		return r.snapshot(), nil
	case err := <-p.Err():
		if err == nil {
			err = pkgerrors.New("battery source stopped before reporting")
		}
		return statusJSON{}, err
	case <-time.After(timeout):
		return statusJSON{}, pkgerrors.Errorf("no battery status received within %s", timeout)
	}
}

func printStatus(w io.Writer, s statusJSON, asJSON bool) error {
	if asJSON {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return pkgerrors.Wrap(err, "failed to marshal status")
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	bold := color.New(color.Bold).SprintFunc()

	_, err := fmt.Fprintf(w, "%s %s\n%s  %s\n%s  %s\n",
		bold("Battery:"), s.Display.Percentage,
		bold("Source:"), s.Display.ChargingSource,
		bold("Status:"), s.Display.ChargingStatus,
	)
	return err
}
