package main

import (
	"time"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

// readingPayload is the JSON form of a reading sent to SSE and MQTT clients
type readingPayload struct {
	SensorID    int       `json:"sensorId"`
	Name        string    `json:"name,omitempty"`
	SensorType  int       `json:"sensorType"`
	Temperature float64   `json:"temperature"`
	Humidity    *int      `json:"humidity,omitempty"`
	NewBattery  bool      `json:"newBattery"`
	LowBattery  bool      `json:"lowBattery"`
	Timestamp   time.Time `json:"timestamp"`
}

func newPayload(r lacrosse.Reading, names map[int]string) readingPayload {
	p := readingPayload{
		SensorID:    r.SensorID,
		Name:        names[r.SensorID],
		SensorType:  r.SensorType,
		Temperature: r.Temperature,
		NewBattery:  r.NewBattery,
		LowBattery:  r.LowBattery,
		Timestamp:   time.Now(),
	}
	if r.HasHumidity {
		h := r.Humidity
		p.Humidity = &h
	}
	return p
}
