package lacrosse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReading(t *testing.T) {
	r, ok := ParseReading("OK 9 1 1 4 150 66")
	require.True(t, ok)

	assert.Equal(t, 1, r.SensorID)
	assert.Equal(t, 1, r.SensorType)
	assert.Equal(t, 17.4, r.Temperature)
	assert.True(t, r.HasHumidity)
	assert.Equal(t, 66, r.Humidity)
	assert.False(t, r.NewBattery)
	assert.False(t, r.LowBattery)
}

func TestParseReadingFlags(t *testing.T) {
	tests := []struct {
		line        string
		sensorType  int
		temperature float64
		humidity    int
		hasHumidity bool
		newBattery  bool
		lowBattery  bool
	}{
		{"OK 9 2 129 4 150 194", 1, 17.4, 66, true, true, true},
		{"OK 9 2 2 4 150 106", 2, 17.4, 0, false, false, false},
		{"OK 9 2 1 4 150 234", 1, 17.4, 0, false, false, true},
		{"OK 9 5 1 3 200 50", 1, -3.2, 50, true, false, false},
		{"OK 9 5 1 3 232 0", 1, 0, 0, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, ok := ParseReading(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.sensorType, r.SensorType)
			assert.Equal(t, tt.temperature, r.Temperature)
			assert.Equal(t, tt.hasHumidity, r.HasHumidity)
			assert.Equal(t, tt.humidity, r.Humidity)
			assert.Equal(t, tt.newBattery, r.NewBattery)
			assert.Equal(t, tt.lowBattery, r.LowBattery)
		})
	}
}

func TestParseReadingMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"OK",
		"OK 9 1 1 4 150",
		"OK 9 1 1 4 150 66 7",
		"OK 9 a 1 4 150 66",
		"ok 9 1 1 4 150 66",
		"NO 9 1 1 4 150 66",
		"OK 9 1 1 99999999999999999 150 66",
		"OK 9 1 1 4 256 66",
		"OK 9 1 1 4 150 -1",
		"OK 9 300 1 4 150 66",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241)]",
	} {
		_, ok := ParseReading(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		kind LineKind
	}{
		{"OK 9 1 1 4 150 66", LineReading},
		{"  OK 9 1 1 4 150 66\r", LineReading},
		{"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241)]", LineInfo},
		{"", LineIgnored},
		{"OK 9 1 1 4", LineIgnored},
		{"[LaCrosseITPlusReader.10.1s", LineIgnored},
		{"garbage", LineIgnored},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, ParseLine(tt.line).Kind, "line %q", tt.line)
	}
}

func TestReadingString(t *testing.T) {
	r, _ := ParseReading("OK 9 1 1 4 150 66")
	assert.Equal(t, "id=1 t=17.4 h=66 nbat=0 lbat=0", r.String())

	r, _ = ParseReading("OK 9 7 129 4 150 234")
	assert.Equal(t, "id=7 t=17.4 h=- nbat=1 lbat=1", r.String())
}
