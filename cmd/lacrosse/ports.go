package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

// portsCmd lists serial ports
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Long:  `Lists serial ports, marking the ones whose USB id matches a known receiver.`,
	Args:  cobra.NoArgs,
	RunE:  ports,
}

func init() {
	RootCmd.AddCommand(portsCmd)
}

func ports(cmd *cobra.Command, args []string) error {
	list, err := lacrosse.ScanPorts()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No serial ports found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PORT\tUSB ID\tPRODUCT\tRECEIVER")
	for _, p := range list {
		id := "-"
		if p.IsUSB {
			id = p.VID + ":" + p.PID
		}
		mark := ""
		if p.Receiver {
			mark = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, id, p.Product, mark)
	}
	return w.Flush()
}
