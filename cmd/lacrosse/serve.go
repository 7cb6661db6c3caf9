package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

// serveCmd streams readings to SSE and MQTT clients
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve readings over HTTP and MQTT",
	Long: `Starts the receiver and serves its readings as a server-sent event stream
on /sse, prometheus metrics on /metrics and the receiver banner on /info.
When a broker is configured every reading is also published to MQTT.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":8089", "HTTP listen address")
	serveCmd.Flags().String("broker", "", "MQTT broker, e.g. tcp://localhost:1883 (disabled when empty)")
	serveCmd.Flags().String("topic", "lacrosse", "MQTT topic prefix")
	serveCmd.Flags().String("client-id", "lacrosse", "MQTT client id")

	viper.BindPFlags(serveCmd.Flags())
}

func serve(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	log.Infof("lacrosse server started")
	log.Info("-------------------------------------")
	log.Infof("%-15s: %s", "Version", version)
	log.Infof("%-15s: %v", "Production", isProduction())
	log.Infof("%-15s: %s", "Device", viper.GetString("device"))
	log.Infof("%-15s: %s", "Listen", viper.GetString("listen"))
	log.Infof("%-15s: %s", "Broker", viper.GetString("broker"))
	log.Info("-------------------------------------")

	metrics := lacrosse.NewMetrics(prometheus.DefaultRegisterer)

	dev, err := openDevice(log, lacrosse.WithMetrics(metrics))
	if err != nil {
		return err
	}

	names := sensorNames()

	sseHandler := NewSSEHandler(log, names)
	dev.RegisterAll(sseHandler)

	if broker := viper.GetString("broker"); broker != "" {
		pub, err := newMQTTPublisher(broker, viper.GetString("client-id"), viper.GetString("topic"), names, log)
		if err != nil {
			dev.Close()
			return err
		}
		defer pub.Close()
		dev.RegisterAll(pub)
	}

	if err := dev.Start(); err != nil {
		dev.Close()
		return err
	}

	// The receiver only prints its banner at boot, so ask for it
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := dev.RequestInfo(ctx); err != nil {
			log.Warnf("No banner from receiver: %s", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/sse", sseHandler.HandleHTTP)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/info", infoHandler(dev, log))
	mux.HandleFunc("/", handleRoot)

	// Cancelling baseCtx ends the SSE streams so Shutdown does not wait on them
	baseCtx, stopClients := context.WithCancel(context.Background())
	defer stopClients()

	srv := &http.Server{
		Addr:        viper.GetString("listen"),
		Handler:     mux,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting HTTP server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan struct{})
	go func() {
		waitForSignal()
		close(sigCh)
	}()

	var runErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-sigCh:
		log.Info("Shutting down...")
	}

	stopClients()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return multierr.Combine(
		runErr,
		srv.Shutdown(ctx),
		dev.Close(),
		dev.Err(),
	)
}

// infoHandler serves the last receiver banner as JSON
func infoHandler(dev *lacrosse.Device, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := dev.Info()
		if !ok {
			http.Error(w, "No banner received yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info.Fields()); err != nil {
			log.Errorf("Failed to write info: %s", err)
		}
	}
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "LaCrosse SSE Server\n\nConnect to /sse for reading stream")
}
