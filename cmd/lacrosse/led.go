package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ledCmd switches the activity LED
var ledCmd = &cobra.Command{
	Use:       "led on|off",
	Short:     "Switch the receiver LED",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      led,
}

func init() {
	RootCmd.AddCommand(ledCmd)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func led(cmd *cobra.Command, args []string) error {
	enabled, err := parseOnOff(args[0])
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

	return dev.SetLedMode(enabled)
}
