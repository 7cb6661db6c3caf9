package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

var cfgFile string

// RootCmd is the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lacrosse",
	Short: "LaCrosse sensor receiver tool",
	Long: `lacrosse talks to a USB LaCrosse/JeeLink receiver.

It prints or streams sensor readings and changes the receiver's radio
configuration.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is lacrosse.yaml)")
	RootCmd.PersistentFlags().StringP("device", "d", "/dev/ttyUSB0", "Serial port of the receiver")
	RootCmd.PersistentFlags().IntP("baud", "b", lacrosse.DefaultBaudRate, "Serial baud rate")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	viper.BindPFlags(RootCmd.PersistentFlags())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName("lacrosse")
	viper.AddConfigPath("/etc/lacrosse/")
	viper.AddConfigPath("$HOME/.lacrosse/")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("lacrosse")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine, a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "can't read config: %s\n", err)
			os.Exit(1)
		}
	}
}

// newLogger returns a production logger for release builds and a
// development one otherwise or when verbose
func newLogger() *zap.SugaredLogger {
	var logger *zap.Logger
	if isProduction() && !viper.GetBool("verbose") {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	return logger.Sugar()
}

// openDevice opens the configured serial port
func openDevice(log *zap.SugaredLogger, opts ...lacrosse.Option) (*lacrosse.Device, error) {
	name := viper.GetString("device")
	baud := viper.GetInt("baud")

	log.Debugf("%-15s: %s", "Device", name)
	log.Debugf("%-15s: %d", "Baud", baud)

	opts = append([]lacrosse.Option{lacrosse.WithLogger(log)}, opts...)
	return lacrosse.Open(name, baud, opts...)
}

// sensorNames returns the configured friendly names keyed by sensor id
func sensorNames() map[int]string {
	names := make(map[int]string)
	for k, v := range viper.GetStringMapString("sensors") {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		names[id] = v
	}
	return names
}

// waitForSignal blocks until SIGINT or SIGTERM
func waitForSignal() os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	return <-sigChan
}
