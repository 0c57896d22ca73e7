package main

import (
	"github.com/spf13/cobra"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/config"
	"github.com/charlie0129/battview/pkg/display"
	"github.com/charlie0129/battview/pkg/notify"
)

func NewDecodeCommand() *cobra.Command {
	var (
		asJSON bool
		extras = map[string]*int{
			notify.ExtraLevel:   new(int),
			notify.ExtraScale:   new(int),
			notify.ExtraPlugged: new(int),
			notify.ExtraStatus:  new(int),
		}
	)

	cmd := &cobra.Command{
		Use:     "decode",
		Short:   "Decode a battery changed payload without a battery source",
		GroupID: gAdvanced,
		Long: `Decode a battery changed payload without a battery source.

Plugged codes: 0 none, 1 AC, 2 USB, 4 wireless.
Status codes: 1 unknown, 2 charging, 3 discharging, 4 not charging, 5 full.
Fields left out are treated as missing.`,
		Example: `  battview decode --level 50 --scale 100 --plugged 1 --status 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			payload := notify.Extras{}
			for k, v := range extras {
				payload[k] = *v
			}

			return printStatus(cmd.OutOrStdout(), decodeStatus(payload, conf.Labels()), asJSON)
		},
	}

	f := cmd.Flags()
	f.IntVar(extras[notify.ExtraLevel], "level", battery.Missing, "battery level")
	f.IntVar(extras[notify.ExtraScale], "scale", battery.Missing, "maximum battery level")
	f.IntVar(extras[notify.ExtraPlugged], "plugged", battery.Missing, "plugged code")
	f.IntVar(extras[notify.ExtraStatus], "status", battery.Missing, "status code")
	f.BoolVar(&asJSON, "json", false, "output in JSON format")

	return cmd
}

func decodeStatus(payload notify.Extras, labels config.Labels) statusJSON {
	s := battery.Decode(payload)

	sink := display.NewMemory()
	display.NewPanel(sink, labels).HandleStatus(s)

	return statusJSON{
		Display: sink.Fields(),
		Battery: s,
	}
}
