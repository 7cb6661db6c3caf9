package lacrosse

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	batteryFlag = 0x80
	valueMask   = 0x7f

	// noHumidity is reported by sensors without a humidity channel
	noHumidity = 106
)

// Reading is one decoded sensor measurement.
//
// Line layout:
//
//	OK 9 <id> <type|newbat> <temp hi> <temp lo> <humidity|lowbat>
//
// The temperature code is (celsius*10 + 1000) split in two bytes.
type Reading struct {
	SensorID    int
	SensorType  int
	Temperature float64
	Humidity    int  // Only meaningful when HasHumidity is true
	HasHumidity bool
	NewBattery  bool
	LowBattery  bool
}

// String renders the reading in the receiver's log style
func (r Reading) String() string {
	h := "-"
	if r.HasHumidity {
		h = strconv.Itoa(r.Humidity)
	}
	return fmt.Sprintf("id=%d t=%.1f h=%s nbat=%d lbat=%d",
		r.SensorID, r.Temperature, h, b2i(r.NewBattery), b2i(r.LowBattery))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// LineKind classifies a received line
type LineKind int

const (
	LineIgnored LineKind = iota
	LineReading
	LineInfo
)

func (k LineKind) String() string {
	switch k {
	case LineReading:
		return "reading"
	case LineInfo:
		return "info"
	default:
		return "ignored"
	}
}

// Line is the classification of one received line
type Line struct {
	Kind    LineKind
	Reading Reading
	Info    DeviceInfo
}

// ParseLine classifies a raw line. Anything that is neither a reading nor a
// banner, including an empty line, is LineIgnored.
func ParseLine(line string) Line {
	line = strings.TrimSpace(line)
	if line == "" {
		return Line{}
	}
	if r, ok := ParseReading(line); ok {
		return Line{Kind: LineReading, Reading: r}
	}
	if info, ok := ParseInfo(line); ok {
		return Line{Kind: LineInfo, Info: info}
	}
	return Line{}
}

// ParseReading decodes an "OK ..." sensor line. ok is false for any other
// or malformed line.
func ParseReading(line string) (r Reading, ok bool) {
	f := strings.Fields(line)
	if len(f) != 7 || f[0] != "OK" {
		return Reading{}, false
	}

	var v [6]int
	for i, s := range f[1:] {
		// Every field is one byte on the wire
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 255 {
			return Reading{}, false
		}
		v[i] = n
	}

	flags, hi, lo, hum := v[2], v[3], v[4], v[5]

	r = Reading{
		SensorID:    v[1],
		SensorType:  flags & valueMask,
		NewBattery:  flags&batteryFlag != 0,
		Temperature: float64(hi*256+lo-1000) / 10,
		LowBattery:  hum&batteryFlag != 0,
	}
	if h := hum & valueMask; h != noHumidity {
		r.Humidity = h
		r.HasHumidity = true
	}

	return r, true
}
