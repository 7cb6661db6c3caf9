package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

// scanCmd prints readings as they arrive
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Print sensor readings",
	Long:  `Starts the receiver and prints every sensor reading until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  scan,
}

func init() {
	RootCmd.AddCommand(scanCmd)
}

func scan(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer dev.Close()

	names := sensorNames()
	out := cmd.OutOrStdout()

	dev.RegisterAll(lacrosse.HandlerFunc(func(r lacrosse.Reading) error {
		if name, ok := names[r.SensorID]; ok {
			_, err := fmt.Fprintf(out, "%s (%s)\n", r, name)
			return err
		}
		_, err := fmt.Fprintln(out, r)
		return err
	}))

	if err := dev.Start(); err != nil {
		return err
	}

	log.Info("Scanning. Press Ctrl+C to stop...")
	waitForSignal()
	log.Info("Shutting down...")

	dev.Stop()
	return dev.Err()
}
