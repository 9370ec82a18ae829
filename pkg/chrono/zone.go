package chrono

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // transition tables for IANA zones on hosts without zoneinfo

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/safemath"
)

// Zone maps between instant millis and local millis. Transition data
// comes from the host's time zone database through time.Location; a Zone
// never computes transitions itself.
//
// Zones are immutable and shared; LoadZone returns the same pointer for
// the same ID.
type Zone struct {
	id     string
	loc    *time.Location
	fixed  bool
	offset int // millis, only meaningful when fixed
}

// UTC is the zone with a permanent zero offset.
var UTC = &Zone{id: "UTC", loc: time.UTC, fixed: true}

const maxOffsetMillis = int(field.MillisPerDay) - 1

var zones = struct {
	sync.Mutex
	byID map[string]*Zone
}{byID: map[string]*Zone{"UTC": UTC}}

// LoadZone resolves "UTC", a fixed offset such as "+05:30" or "-08:00",
// or an IANA name such as "Europe/London".
func LoadZone(id string) (*Zone, error) {
	if id == "" {
		return nil, chronoerr.Invalid("zone id must not be empty")
	}
	if id == "Z" {
		id = "UTC"
	}
	if id[0] == '+' || id[0] == '-' {
		offset, err := parseOffset(id)
		if err != nil {
			return nil, err
		}
		return FixedZone(offset)
	}

	zones.Lock()
	defer zones.Unlock()
	if z, ok := zones.byID[id]; ok {
		return z, nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, chronoerr.Invalid("unknown zone %q: %v", id, err)
	}
	z := &Zone{id: id, loc: loc}
	start, end := time.UnixMilli(0).In(loc).ZoneBounds()
	if start.IsZero() && end.IsZero() {
		_, sec := time.UnixMilli(0).In(loc).Zone()
		z.fixed = true
		z.offset = sec * 1000
	}
	zones.byID[id] = z
	return z, nil
}

// FixedZone returns the zone with a permanent offset in millis.
func FixedZone(offsetMillis int) (*Zone, error) {
	if offsetMillis == 0 {
		return UTC, nil
	}
	if offsetMillis < -maxOffsetMillis || offsetMillis > maxOffsetMillis {
		return nil, chronoerr.Range("offset", int64(offsetMillis), int64(-maxOffsetMillis), int64(maxOffsetMillis))
	}
	id := formatOffset(offsetMillis)

	zones.Lock()
	defer zones.Unlock()
	if z, ok := zones.byID[id]; ok {
		return z, nil
	}
	z := &Zone{
		id:     id,
		loc:    time.FixedZone(id, offsetMillis/1000),
		fixed:  true,
		offset: offsetMillis,
	}
	zones.byID[id] = z
	return z, nil
}

func (z *Zone) ID() string               { return z.id }
func (z *Zone) String() string           { return z.id }
func (z *Zone) IsFixed() bool            { return z.fixed }
func (z *Zone) IsUTC() bool              { return z == UTC }
func (z *Zone) Location() *time.Location { return z.loc }

// Offset returns the millis to add to instant to obtain local millis.
func (z *Zone) Offset(instant int64) int {
	if z.fixed {
		return z.offset
	}
	_, sec := time.UnixMilli(instant).In(z.loc).Zone()
	return sec * 1000
}

// NextTransition returns the first offset transition strictly after
// instant, or instant itself when the zone has no later transition.
func (z *Zone) NextTransition(instant int64) int64 {
	if z.fixed {
		return instant
	}
	_, end := time.UnixMilli(instant).In(z.loc).ZoneBounds()
	if end.IsZero() {
		return instant
	}
	return end.UnixMilli()
}

// PreviousTransition returns the last millisecond before the transition
// at or preceding instant, or instant itself when there is none.
func (z *Zone) PreviousTransition(instant int64) int64 {
	if z.fixed {
		return instant
	}
	start, _ := time.UnixMilli(instant).In(z.loc).ZoneBounds()
	if start.IsZero() {
		return instant
	}
	return start.UnixMilli() - 1
}

// ConvertUTCToLocal adds the offset in effect at instant.
func (z *Zone) ConvertUTCToLocal(instant int64) (int64, error) {
	offset := z.Offset(instant)
	local, err := safemath.Add(instant, int64(offset))
	if err != nil {
		return 0, chronoerr.Overflowed("adding time zone offset caused overflow")
	}
	return local, nil
}

// toLocal is ConvertUTCToLocal for read paths that cannot fail; it
// saturates at the ends of the timeline.
func (z *Zone) toLocal(instant int64) int64 {
	local, err := z.ConvertUTCToLocal(instant)
	if err != nil {
		if instant < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return local
}

// OffsetFromLocal returns the offset to subtract from local millis to get
// an instant. In an overlap the earlier (summer) offset wins; in a gap the
// offset before the transition is returned.
func (z *Zone) OffsetFromLocal(local int64) int {
	offsetLocal := z.Offset(local)
	adjusted := local - int64(offsetLocal)
	offsetAdjusted := z.Offset(adjusted)
	if offsetLocal != offsetAdjusted {
		if offsetLocal-offsetAdjusted < 0 {
			nextLocal := z.NextTransition(adjusted)
			if nextLocal == local-int64(offsetLocal) {
				nextLocal = math.MaxInt64
			}
			nextAdjusted := z.NextTransition(local - int64(offsetAdjusted))
			if nextAdjusted == local-int64(offsetAdjusted) {
				nextAdjusted = math.MaxInt64
			}
			if nextLocal != nextAdjusted {
				return offsetLocal
			}
		}
	} else if offsetLocal >= 0 {
		prev := z.PreviousTransition(adjusted)
		if prev < adjusted {
			offsetPrev := z.Offset(prev)
			if adjusted-prev <= int64(offsetPrev-offsetLocal) {
				return offsetPrev
			}
		}
	}
	return offsetAdjusted
}

// ConvertLocalToUTC subtracts the offset in effect at local. A local
// time inside a gap fails with InvalidArgument when strict; otherwise it
// resolves using the offset before the gap.
func (z *Zone) ConvertLocalToUTC(local int64, strict bool) (int64, error) {
	offsetLocal := z.Offset(local)
	offset := z.Offset(local - int64(offsetLocal))
	if offsetLocal != offset && (strict || offsetLocal < 0) {
		nextLocal := z.NextTransition(local - int64(offsetLocal))
		if nextLocal == local-int64(offsetLocal) {
			nextLocal = math.MaxInt64
		}
		nextAdjusted := z.NextTransition(local - int64(offset))
		if nextAdjusted == local-int64(offset) {
			nextAdjusted = math.MaxInt64
		}
		if nextLocal != nextAdjusted {
			if strict {
				return 0, z.illegalInstant(local)
			}
			offset = offsetLocal
		}
	}
	instant, err := safemath.Sub(local, int64(offset))
	if err != nil {
		return 0, chronoerr.Overflowed("subtracting time zone offset caused overflow")
	}
	return instant, nil
}

// convertLocalToUTCNear prefers the offset in effect at original, so a
// local time in an overlap keeps the side of the overlap it started on.
func (z *Zone) convertLocalToUTCNear(local int64, strict bool, original int64) (int64, error) {
	offsetOriginal := z.Offset(original)
	instant := local - int64(offsetOriginal)
	if z.Offset(instant) == offsetOriginal {
		return instant, nil
	}
	return z.ConvertLocalToUTC(local, strict)
}

// localToUTC is the strict conversion used when assembling an instant
// from fields: a local time in a gap is rejected.
func (z *Zone) localToUTC(local int64) (int64, error) {
	offset := z.OffsetFromLocal(local)
	instant, err := safemath.Sub(local, int64(offset))
	if err != nil {
		return 0, chronoerr.Overflowed("subtracting time zone offset caused overflow")
	}
	if offset != z.Offset(instant) {
		return 0, z.illegalInstant(local)
	}
	return instant, nil
}

func (z *Zone) illegalInstant(local int64) error {
	ts := time.UnixMilli(local).UTC().Format("2006-01-02T15:04:05.000")
	return chronoerr.Invalid("illegal instant due to time zone offset transition (daylight savings time 'gap'): %s (%s)", ts, z.id)
}

func formatOffset(offsetMillis int) string {
	sign := '+'
	if offsetMillis < 0 {
		sign = '-'
		offsetMillis = -offsetMillis
	}
	h := offsetMillis / int(field.MillisPerHour)
	m := offsetMillis / int(field.MillisPerMinute) % 60
	s := offsetMillis / int(field.MillisPerSecond) % 60
	ms := offsetMillis % int(field.MillisPerSecond)
	out := fmt.Sprintf("%c%02d:%02d", sign, h, m)
	if s != 0 || ms != 0 {
		out += fmt.Sprintf(":%02d", s)
	}
	if ms != 0 {
		out += fmt.Sprintf(".%03d", ms)
	}
	return out
}

// parseOffset reads ±hh, ±hh:mm, ±hh:mm:ss or ±hh:mm:ss.SSS.
func parseOffset(s string) (int, error) {
	bad := chronoerr.Invalid("malformed zone offset %q", s)
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]
	var frac string
	if i := strings.IndexByte(body, '.'); i >= 0 {
		body, frac = body[:i], body[i+1:]
		if len(frac) != 3 {
			return 0, bad
		}
	}
	parts := strings.Split(body, ":")
	if len(parts) > 3 || (frac != "" && len(parts) != 3) {
		return 0, bad
	}
	limits := []int{23, 59, 59}
	units := []int64{field.MillisPerHour, field.MillisPerMinute, field.MillisPerSecond}
	var total int64
	for i, p := range parts {
		if len(p) != 2 {
			return 0, bad
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, bad
		}
		total += int64(n) * units[i]
	}
	if frac != "" {
		n, err := strconv.Atoi(frac)
		if err != nil || n < 0 {
			return 0, bad
		}
		total += int64(n)
	}
	return sign * int(total), nil
}
