package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/daviddao/chronology/pkg/chrono"
	"github.com/daviddao/chronology/pkg/clock"
	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/period"
	"github.com/daviddao/chronology/pkg/store"
	"github.com/daviddao/chronology/pkg/temporal"
)

// app holds shared state for all CLI subcommands.
type app struct {
	cfg     Config
	out     io.Writer
	errOut  io.Writer
	log     *slog.Logger
	clock   clock.Source
	jsonOut bool

	store     store.StoreInterface
	openStore func(path string) (store.StoreInterface, error)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		log:    newLogger(errOut, false),
		clock:  clock.Default,
		openStore: func(path string) (store.StoreInterface, error) {
			return store.New(path)
		},
	}
}

// db opens the database on first use.
func (a *app) db() (store.StoreInterface, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := a.openStore(a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", a.cfg.DB, err)
	}
	a.log.Debug("opened database", "path", a.cfg.DB)
	a.store = s
	return s, nil
}

// Close releases the database connection, if one was opened.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

// chronology resolves the configured calendar and zone.
func (a *app) chronology() (chrono.Chronology, error) {
	zone, err := chrono.LoadZone(a.cfg.Zone)
	if err != nil {
		return nil, err
	}
	return chrono.New(chrono.Calendar(a.cfg.Calendar), zone)
}

var localPattern = regexp.MustCompile(`^([+-]?\d{1,9})-(\d{2})-(\d{2})(?:T(\d{2}):(\d{2})(?::(\d{2})(?:\.(\d{1,3}))?)?)?$`)

// parseInstant accepts:
//
//	now                       the current instant
//	@label                    a saved stamp, in its own chronology
//	1675123200000             millis since the epoch
//	2023-01-31T10:00:00Z      RFC 3339 with an offset
//	2023-01-31[T10:00[:00[.000]]]  local fields in the configured zone
func (a *app) parseInstant(s string) (temporal.DateTime, error) {
	c, err := a.chronology()
	if err != nil {
		return temporal.DateTime{}, err
	}
	switch {
	case s == "now":
		return temporal.Now(a.clock, c), nil
	case strings.HasPrefix(s, "@"):
		db, err := a.db()
		if err != nil {
			return temporal.DateTime{}, err
		}
		st, err := db.GetStamp(s[1:])
		if err != nil {
			return temporal.DateTime{}, err
		}
		return st.DateTime()
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return temporal.NewDateTime(ms, c), nil
	}
	if m := localPattern.FindStringSubmatch(s); m != nil {
		var v [7]int
		for i, part := range m[1:] {
			if part == "" {
				continue
			}
			if i == 6 {
				part += strings.Repeat("0", 3-len(part))
			}
			if v[i], err = strconv.Atoi(part); err != nil {
				return temporal.DateTime{}, fmt.Errorf("instant %q: %w", s, err)
			}
		}
		ldt, err := temporal.LocalDateTimeOf(v[0], v[1], v[2], v[3], v[4], v[5], v[6], c)
		if err != nil {
			return temporal.DateTime{}, fmt.Errorf("instant %q: %w", s, err)
		}
		return ldt.InZone(c.Zone())
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return temporal.DateTime{}, fmt.Errorf("instant %q: want now, @label, millis, RFC 3339 or YYYY-MM-DD[THH:MM[:SS[.mmm]]]", s)
	}
	return temporal.NewDateTime(t.UnixMilli(), c), nil
}

// parseFieldType resolves a field name such as "monthOfYear", ignoring case.
func parseFieldType(name string) (field.DateTimeFieldType, error) {
	if t, ok := field.DateTimeFieldTypeByName(name); ok {
		return t, nil
	}
	for _, t := range field.DateTimeFieldTypes() {
		if strings.EqualFold(t.Name(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// parsePeriodType resolves a period type name such as "YearMonthDay".
func parsePeriodType(name string) (*period.Type, error) {
	for _, t := range period.Types() {
		if strings.EqualFold(t.Name(), name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown period type %q", name)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
