package main

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

func TestSSEHandlerStreamsReadings(t *testing.T) {
	h := NewSSEHandler(zap.NewNop().Sugar(), map[int]string{1: "kitchen"})

	srv := httptest.NewServer(http.HandlerFunc(h.HandleHTTP))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	require.Eventually(t, func() bool { return h.clientCount() == 1 }, time.Second, time.Millisecond)

	r, ok := lacrosse.ParseReading("OK 9 1 1 4 150 66")
	require.True(t, ok)
	require.NoError(t, h.HandleReading(r))

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	assert.Equal(t, "event: sensor-1", scanner.Text())
	require.True(t, scanner.Scan())
	data := scanner.Text()
	assert.True(t, strings.HasPrefix(data, "data: {"))
	assert.Contains(t, data, `"sensorId":1`)
	assert.Contains(t, data, `"name":"kitchen"`)
	assert.Contains(t, data, `"temperature":17.4`)
	assert.Contains(t, data, `"humidity":66`)

	cancel()
	require.Eventually(t, func() bool { return h.clientCount() == 0 }, time.Second, time.Millisecond)
}

func TestSSEHandlerWithoutClients(t *testing.T) {
	h := NewSSEHandler(zap.NewNop().Sugar(), nil)
	assert.NoError(t, h.HandleReading(lacrosse.Reading{SensorID: 3}))
}

func TestPayloadOmitsMissingHumidity(t *testing.T) {
	r, ok := lacrosse.ParseReading("OK 9 2 1 4 150 106")
	require.True(t, ok)

	p := newPayload(r, nil)
	assert.Nil(t, p.Humidity)
	assert.Empty(t, p.Name)
	assert.Equal(t, 2, p.SensorID)
}

func TestParseOnOff(t *testing.T) {
	for _, s := range []string{"on", "ON", "1", "true"} {
		v, err := parseOnOff(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "0", "false"} {
		v, err := parseOnOff(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := parseOnOff("blink")
	assert.Error(t, err)
}
