package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/charlie0129/battview/pkg/gui"
)

func NewGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:     "gui",
		Short:   "Show battery status in the system tray",
		GroupID: gBasic,
		Long: `Show battery status in the system tray.

Updates are received while the tray is running. Use the "Pause Updates" menu
item to stop listening without quitting.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGUI()
		},
	}
}

func runGUI() error {
	p, err := newPipeline(context.Background())
	if err != nil {
		return err
	}
	defer p.Close()

	gui.Run(p.host, p.conf)

	return nil
}
