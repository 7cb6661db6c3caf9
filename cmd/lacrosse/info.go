package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// infoCmd prints the receiver banner
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show receiver identification",
	Long:  `Asks the receiver for its banner and prints the firmware and radio settings.`,
	Args:  cobra.NoArgs,
	RunE:  info,
}

func init() {
	RootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Duration("timeout", 5*time.Second, "How long to wait for the banner")
}

func info(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	banner, err := dev.RequestInfo(ctx)
	if err != nil {
		return fmt.Errorf("no banner from %s: %w", viper.GetString("device"), err)
	}

	fields := banner.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", k, fields[k])
	}
	return nil
}
