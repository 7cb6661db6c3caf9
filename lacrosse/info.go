package lacrosse

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is an optional banner value. The zero Field is absent, which keeps
// a missing value apart from a real "0".
type Field struct {
	value string
	set   bool
}

func present(v string) Field {
	return Field{value: v, set: true}
}

// Value returns the field value and whether it was present in the banner
func (f Field) Value() (string, bool) {
	return f.value, f.set
}

// IsSet reports whether the field was present in the banner
func (f Field) IsSet() bool {
	return f.set
}

// RadioInfo describes one radio bank from the banner
type RadioInfo struct {
	Name           string
	Frequency      Field
	DataRate       Field // set by "r:<rate>"
	ToggleInterval Field // set by "t:<interval>~<mask>"
	ToggleMask     Field
}

// DeviceInfo is the receiver identification banner, e.g.
//
//	[LaCrosseITPlusReader.10.1s (RFM12B f:0 r:17241)]
//
// Radios are listed in order of appearance, so Radios[0] is bank 1.
type DeviceInfo struct {
	Name    string
	Version string
	Radios  []RadioInfo
}

// Fields returns the flat key/value view of the banner: name, version and
// rfm<N>name, rfm<N>frequency, rfm<N>datarate, rfm<N>toggleinterval,
// rfm<N>togglemask per bank. Absent values have no key.
func (i DeviceInfo) Fields() map[string]string {
	m := map[string]string{
		"name":    i.Name,
		"version": i.Version,
	}
	for n, r := range i.Radios {
		prefix := fmt.Sprintf("rfm%d", n+1)
		m[prefix+"name"] = r.Name
		for key, f := range map[string]Field{
			"frequency":      r.Frequency,
			"datarate":       r.DataRate,
			"toggleinterval": r.ToggleInterval,
			"togglemask":     r.ToggleMask,
		} {
			if v, ok := f.Value(); ok {
				m[prefix+key] = v
			}
		}
	}
	return m
}

var (
	bannerRe = regexp.MustCompile(`^\[(\w+)\.(\S+)\s+(.*)\]$`)
	radioRe  = regexp.MustCompile(`\(([^()]*)\)`)
)

// ParseInfo decodes the identification banner. ok is false when line is not
// a well formed banner.
func ParseInfo(line string) (info DeviceInfo, ok bool) {
	m := bannerRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return DeviceInfo{}, false
	}

	info = DeviceInfo{Name: m[1], Version: m[2]}
	rest := m[3]

	groups := radioRe.FindAllStringSubmatchIndex(rest, -1)
	if len(groups) == 0 {
		return DeviceInfo{}, false
	}

	last := 0
	for _, g := range groups {
		// Only blanks and "+" may separate radio groups
		if strings.Trim(rest[last:g[0]], " +") != "" {
			return DeviceInfo{}, false
		}
		radio, ok := parseRadio(rest[g[2]:g[3]])
		if !ok {
			return DeviceInfo{}, false
		}
		info.Radios = append(info.Radios, radio)
		last = g[1]
	}
	if strings.TrimSpace(rest[last:]) != "" {
		return DeviceInfo{}, false
	}

	return info, true
}

// parseRadio decodes "RFM12B f:0 r:17241" or "RFM12B f:0 t:10~3". A radio
// needs a frequency and exactly one of a data rate or a toggle setting.
func parseRadio(s string) (RadioInfo, bool) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return RadioInfo{}, false
	}

	r := RadioInfo{Name: tokens[0]}
	seen := make(map[string]bool)
	for _, tok := range tokens[1:] {
		key, val, found := strings.Cut(tok, ":")
		if !found {
			continue
		}
		if val == "" || seen[key] {
			return RadioInfo{}, false
		}
		seen[key] = true

		switch key {
		case "f":
			r.Frequency = present(val)
		case "r":
			r.DataRate = present(val)
		case "t":
			interval, mask, found := strings.Cut(val, "~")
			if !found || interval == "" || mask == "" {
				return RadioInfo{}, false
			}
			r.ToggleInterval = present(interval)
			r.ToggleMask = present(mask)
		}
	}

	if !r.Frequency.IsSet() || r.DataRate.IsSet() == r.ToggleInterval.IsSet() {
		return RadioInfo{}, false
	}

	return r, true
}
