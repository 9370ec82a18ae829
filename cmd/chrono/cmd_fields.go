package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/daviddao/chronology/pkg/field"
	"github.com/daviddao/chronology/pkg/temporal"
)

// instantView is the JSON shape of an instant.
type instantView struct {
	Text       string `json:"text"`
	Millis     int64  `json:"millis"`
	Chronology string `json:"chronology"`
	Offset     string `json:"offset"`
}

func viewOf(d temporal.DateTime) instantView {
	return instantView{
		Text:       d.String(),
		Millis:     d.Millis(),
		Chronology: d.Chronology().ID(),
		Offset:     formatOffset(d.Zone().Offset(d.Millis())),
	}
}

func formatOffset(millis int) string {
	sign := '+'
	if millis < 0 {
		sign, millis = '-', -millis
	}
	minutes := millis / 60000
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// printInstant writes d as JSON or as one line of text.
func (a *app) printInstant(d temporal.DateTime) error {
	if a.jsonOut {
		return a.printJSON(viewOf(d))
	}
	a.printf("%s\n", d)
	return nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <instant>",
		Short:   "Show an instant's fields in the configured chronology",
		GroupID: "fields",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parseInstant(args[0])
			if err != nil {
				return err
			}
			values := map[string]int{}
			for _, t := range field.DateTimeFieldTypes() {
				if v, err := d.Get(t); err == nil {
					values[t.Name()] = v
				}
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{"instant": viewOf(d), "fields": values})
			}
			v := viewOf(d)
			a.printf("%s\n", v.Text)
			a.printf("  chronology  %s\n", v.Chronology)
			a.printf("  millis      %s\n", humanize.Comma(v.Millis))
			a.printf("  offset      %s\n", v.Offset)
			for _, t := range field.DateTimeFieldTypes() {
				if v, ok := values[t.Name()]; ok {
					a.printf("  %-20s %d\n", t.Name(), v)
				}
			}
			return nil
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <instant> <field>",
		Short:   "Print one field of an instant with its range",
		GroupID: "fields",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prop, err := a.property(args[0], args[1])
			if err != nil {
				return err
			}
			rem, err := prop.Remainder()
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{
					"field":     prop.Name(),
					"value":     prop.Get(),
					"min":       prop.Minimum(),
					"max":       prop.Maximum(),
					"leap":      prop.IsLeap(),
					"remainder": rem,
				})
			}
			leap := ""
			if prop.IsLeap() {
				leap = " (leap)"
			}
			a.printf("%s = %d  [%d..%d]%s, %s ms into the unit\n",
				prop.Name(), prop.Get(), prop.Minimum(), prop.Maximum(), leap, humanize.Comma(rem))
			return nil
		},
	}
}

func (a *app) property(instant, name string) (temporal.Property, error) {
	d, err := a.parseInstant(instant)
	if err != nil {
		return temporal.Property{}, err
	}
	t, err := parseFieldType(name)
	if err != nil {
		return temporal.Property{}, err
	}
	return d.Property(t)
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <instant> <field> <value>",
		Short:   "Set one field, keeping the others where possible",
		GroupID: "fields",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			prop, err := a.property(args[0], args[1])
			if err != nil {
				return err
			}
			value, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("value %q: %w", args[2], err)
			}
			d, err := prop.Set(value)
			if err != nil {
				return err
			}
			return a.printInstant(d)
		},
	}
}

func (a *app) rollCmd() *cobra.Command {
	var wrap bool
	cmd := &cobra.Command{
		Use:     "roll <instant> <field> <amount>",
		Short:   "Add to one field; --wrap keeps larger fields unchanged",
		GroupID: "fields",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			prop, err := a.property(args[0], args[1])
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[2], err)
			}
			var d temporal.DateTime
			if wrap {
				d, err = prop.AddWrap(amount)
			} else {
				d, err = prop.Add(int64(amount))
			}
			if err != nil {
				return err
			}
			return a.printInstant(d)
		},
	}
	cmd.Flags().BoolVar(&wrap, "wrap", false, "wrap within the field's range")
	return cmd
}

var roundingModes = map[string]temporal.RoundingMode{
	"floor":        temporal.RoundFloor,
	"ceiling":      temporal.RoundCeiling,
	"half-floor":   temporal.RoundHalfFloor,
	"half-ceiling": temporal.RoundHalfCeiling,
	"half-even":    temporal.RoundHalfEven,
}

func (a *app) roundCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:     "round <instant> <field>",
		Short:   "Round an instant to a field boundary",
		GroupID: "fields",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, ok := roundingModes[mode]
			if !ok {
				return fmt.Errorf("unknown rounding mode %q", mode)
			}
			d, err := a.parseInstant(args[0])
			if err != nil {
				return err
			}
			t, err := parseFieldType(args[1])
			if err != nil {
				return err
			}
			m := temporal.NewMutableDateTime(d.Millis(), d.Chronology())
			if err := m.SetRounding(t, rm); err != nil {
				return err
			}
			if err := m.SetMillis(d.Millis()); err != nil {
				return err
			}
			return a.printInstant(m.DateTime())
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "floor", "floor, ceiling, half-floor, half-ceiling or half-even")
	return cmd
}

func (a *app) zoneCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:     "zone <instant>",
		Short:   "Show the zone offset at an instant and the next transitions",
		GroupID: "fields",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parseInstant(args[0])
			if err != nil {
				return err
			}
			zone := d.Zone()
			type transition struct {
				At     instantView `json:"at"`
				Offset string      `json:"offset"`
			}
			var next []transition
			ms := d.Millis()
			for i := 0; i < count && !zone.IsFixed(); i++ {
				t := zone.NextTransition(ms)
				if t == ms {
					break
				}
				at := temporal.NewDateTime(t, d.Chronology())
				next = append(next, transition{At: viewOf(at), Offset: formatOffset(zone.Offset(t))})
				ms = t
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{
					"zone":        zone.ID(),
					"offset":      formatOffset(zone.Offset(d.Millis())),
					"transitions": next,
				})
			}
			a.printf("%s %s at %s\n", zone.ID(), formatOffset(zone.Offset(d.Millis())), d)
			for _, t := range next {
				a.printf("  -> %s from %s\n", t.Offset, t.At.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "transitions", "n", 2, "number of upcoming transitions to list")
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "diff <start> <end> <field>",
		Short:   "Count whole units of a field's duration from start to end",
		GroupID: "fields",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.parseInstant(args[0])
			if err != nil {
				return err
			}
			prop, err := a.property(args[1], args[2])
			if err != nil {
				return err
			}
			n, err := prop.Difference(start)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{"field": prop.Name(), "difference": n})
			}
			a.printf("%s\n", humanize.Comma(n))
			return nil
		},
	}
}
