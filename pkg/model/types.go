// Package model defines the persisted records of the chronology CLI.
//
// Nothing here stores calendar tables. A saved instant is the pair
// (millis, chronology ID) and is rebuilt through the chronology cache; a
// saved period is its unit names and values, encoded as canonical CBOR so
// equal periods produce equal bytes.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/clock"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/period"
	"github.com/daviddao/chronology/pkg/safemath"
	"github.com/daviddao/chronology/pkg/temporal"
)

// Stamp is a saved instant.
type Stamp struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Millis     int64     `json:"millis"`
	Chronology string    `json:"chronology"`
	Seq        int64     `json:"seq"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewStamp captures d under label. ID, Seq and CreatedAt are filled in by
// the store.
func NewStamp(label string, d temporal.DateTime) Stamp {
	return Stamp{Label: label, Millis: d.Millis(), Chronology: d.Chronology().ID()}
}

// DateTime rebuilds the instant through the chronology cache.
func (s Stamp) DateTime() (temporal.DateTime, error) {
	c, err := chrono.ForID(s.Chronology)
	if err != nil {
		return temporal.DateTime{}, fmt.Errorf("stamp %s: %w", s.Label, err)
	}
	return temporal.NewDateTime(s.Millis, c), nil
}

// StampLess orders stamps by instant, then by save sequence.
func StampLess(a, b Stamp) bool {
	if a.Millis != b.Millis {
		return a.Millis < b.Millis
	}
	return clock.Less(a.Seq, a.ID, b.Seq, b.ID)
}

// PeriodRecord is a saved period.
type PeriodRecord struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Digest    string    `json:"digest"`
	Payload   []byte    `json:"payload"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPeriodRecord encodes p under label.
func NewPeriodRecord(label string, p *period.Period) (PeriodRecord, error) {
	data, err := EncodePeriod(p)
	if err != nil {
		return PeriodRecord{}, err
	}
	sum := sha256.Sum256(data)
	return PeriodRecord{
		Label:   label,
		Digest:  hex.EncodeToString(sum[:]),
		Payload: data,
		Text:    p.String(),
	}, nil
}

// Period decodes the payload.
func (r PeriodRecord) Period() (*period.Period, error) { return DecodePeriod(r.Payload) }

// ---------------------------------------------------------------------------
// Period payload
// ---------------------------------------------------------------------------

// payloadVersion is bumped whenever periodPayload changes shape.
const payloadVersion uint8 = 1

type periodPayload struct {
	Version uint8    `cbor:"1,keyasint"`
	Units   []string `cbor:"2,keyasint"`
	Values  []int64  `cbor:"3,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("cbor enc mode: %v", err))
	}
	if decMode, err = (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode(); err != nil {
		panic(fmt.Sprintf("cbor dec mode: %v", err))
	}
}

// EncodePeriod produces the canonical CBOR form of p: its type's units by
// name and one value per unit.
func EncodePeriod(p *period.Period) ([]byte, error) {
	payload := periodPayload{Version: payloadVersion}
	for i := 0; i < p.Size(); i++ {
		payload.Units = append(payload.Units, p.FieldType(i).Name())
		payload.Values = append(payload.Values, int64(p.Value(i)))
	}
	data, err := encMode.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode period: %w", err)
	}
	return data, nil
}

// DecodePeriod reverses EncodePeriod.
func DecodePeriod(data []byte) (*period.Period, error) {
	var payload periodPayload
	if err := decMode.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode period: %w", err)
	}
	if payload.Version != payloadVersion {
		return nil, fmt.Errorf("decode period: unsupported payload version %d", payload.Version)
	}
	if len(payload.Units) != len(payload.Values) {
		return nil, fmt.Errorf("decode period: %d units but %d values", len(payload.Units), len(payload.Values))
	}
	units := make([]field.DurationFieldType, len(payload.Units))
	var f period.Fields
	for i, name := range payload.Units {
		t, ok := field.DurationFieldTypeByName(name)
		if !ok {
			return nil, fmt.Errorf("decode period: unknown unit %q", name)
		}
		units[i] = t
		if err := setField(&f, t, payload.Values[i]); err != nil {
			return nil, fmt.Errorf("decode period: %w", err)
		}
	}
	typ, err := period.ForFields(units...)
	if err != nil {
		return nil, fmt.Errorf("decode period: %w", err)
	}
	return period.Of(typ, f)
}

func setField(f *period.Fields, t field.DurationFieldType, v int64) error {
	n, err := safemath.ToInt32(v)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Name(), err)
	}
	switch t {
	case field.Years:
		f.Years = n
	case field.Months:
		f.Months = n
	case field.Weeks:
		f.Weeks = n
	case field.Days:
		f.Days = n
	case field.Hours:
		f.Hours = n
	case field.Minutes:
		f.Minutes = n
	case field.Seconds:
		f.Seconds = n
	case field.Millis:
		f.Millis = n
	default:
		return fmt.Errorf("unit %s cannot appear in a period", t.Name())
	}
	return nil
}
