package main

import (
	"github.com/spf13/cobra"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

// setCmd groups the radio configuration commands
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the receiver radio configuration",
}

type setter func(d *lacrosse.Device, v lacrosse.Value, b lacrosse.Bank) error

func init() {
	RootCmd.AddCommand(setCmd)

	setCmd.AddCommand(
		newSetCmd("frequency", "Set the radio frequency", (*lacrosse.Device).SetFrequency),
		newSetCmd("datarate", "Set the radio data rate", (*lacrosse.Device).SetDataRate),
		newSetCmd("toggle-interval", "Set the data rate toggle interval", (*lacrosse.Device).SetToggleInterval),
		newSetCmd("toggle-mask", "Set the data rate toggle mask", (*lacrosse.Device).SetToggleMask),
	)
}

func newSetCmd(name, short string, set setter) *cobra.Command {
	c := &cobra.Command{
		Use:   name + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := cmd.Flags().GetInt("bank")
			if err != nil {
				return err
			}

			log := newLogger()
			defer log.Sync()

			dev, err := openDevice(log)
			if err != nil {
				return err
			}
			defer dev.Close()

			return set(dev, lacrosse.StringValue(args[0]), lacrosse.Bank(bank))
		},
	}
	c.Flags().Int("bank", 0, "Radio bank, 1 or 2 (default bank 1)")
	return c
}
