package lacrosse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInfoDataRate(t *testing.T) {
	info, ok := ParseInfo("[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241)]")
	require.True(t, ok)

	f := info.Fields()
	assert.Equal(t, "LaCrosseITPlusReader", f["name"])
	assert.Equal(t, "10.1s", f["version"])
	assert.Equal(t, "RFM12B", f["rfm1name"])
	assert.Equal(t, "0", f["rfm1frequency"])
	assert.Equal(t, "17241", f["rfm1datarate"])

	_, ok = f["rfm1toggleinterval"]
	assert.False(t, ok)
	_, ok = f["rfm1togglemask"]
	assert.False(t, ok)
}

func TestParseInfoToggle(t *testing.T) {
	info, ok := ParseInfo("[LaCrosseITPlusReader.10.1s (RFM12B f:0 t:10~3)]")
	require.True(t, ok)

	f := info.Fields()
	assert.Equal(t, "RFM12B", f["rfm1name"])
	assert.Equal(t, "0", f["rfm1frequency"])
	assert.Equal(t, "10", f["rfm1toggleinterval"])
	assert.Equal(t, "3", f["rfm1togglemask"])

	_, ok = f["rfm1datarate"]
	assert.False(t, ok)

	require.Len(t, info.Radios, 1)
	radio := info.Radios[0]
	assert.False(t, radio.DataRate.IsSet())
	v, ok := radio.Frequency.Value()
	assert.True(t, ok)
	assert.Equal(t, "0", v)
}

func TestParseInfoTwoRadios(t *testing.T) {
	info, ok := ParseInfo("[LaCrosseITPlusReader.10.1s (RFM69CW f:868300 r:17241) + (RFM12B f:868300 t:20~3)]")
	require.True(t, ok)
	require.Len(t, info.Radios, 2)

	f := info.Fields()
	assert.Equal(t, "RFM69CW", f["rfm1name"])
	assert.Equal(t, "17241", f["rfm1datarate"])
	assert.Equal(t, "RFM12B", f["rfm2name"])
	assert.Equal(t, "868300", f["rfm2frequency"])
	assert.Equal(t, "20", f["rfm2toggleinterval"])
	assert.Equal(t, "3", f["rfm2togglemask"])

	_, ok = f["rfm2datarate"]
	assert.False(t, ok)
	_, ok = f["rfm3name"]
	assert.False(t, ok)
}

func TestParseInfoSpaceSeparatedRadios(t *testing.T) {
	info, ok := ParseInfo("[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241) (RFM12B f:0 r:9579)]")
	require.True(t, ok)
	require.Len(t, info.Radios, 2)

	v, _ := info.Radios[1].DataRate.Value()
	assert.Equal(t, "9579", v)
}

func TestParseInfoMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241)",
		"[LaCrosseITPlusReader.10.1s]",
		"[LaCrosseITPlusReader 10.1s (RFM12B f:0 r:17241)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 t:10)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B r:17241)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241 t:10~3)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 f:1 r:17241)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241 r:9579)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241) (RFM12B f:0)]",
		"[LaCrosseITPlusReader.10.1s ()]",
		"[LaCrosseITPlusReader.10.1s junk (RFM12B f:0 r:17241)]",
		"[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241) junk]",
		"OK 9 1 1 4 150 66",
	} {
		_, ok := ParseInfo(line)
		assert.False(t, ok, "line %q", line)
		assert.NotEqual(t, LineInfo, ParseLine(line).Kind, "line %q", line)
	}
}
