package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/daviddao/chronology/pkg/period"
)

// periodView is the JSON shape of a period.
type periodView struct {
	Text      string         `json:"text"`
	Type      string         `json:"type"`
	Values    map[string]int `json:"values"`
	Precision string         `json:"precision"`
	Millis    *int64         `json:"millis,omitempty"`
}

func periodViewOf(p *period.Period) periodView {
	v := periodView{
		Text:      p.String(),
		Type:      p.Type().Name(),
		Values:    map[string]int{},
		Precision: p.Precision().String(),
	}
	for i := 0; i < p.Size(); i++ {
		v.Values[p.FieldType(i).Name()] = p.Value(i)
	}
	if ms, err := p.DurationMillis(); err == nil {
		v.Millis = &ms
	}
	return v
}

func (a *app) printPeriod(p *period.Period) error {
	v := periodViewOf(p)
	if a.jsonOut {
		return a.printJSON(v)
	}
	if v.Millis != nil {
		a.printf("%s  (%s ms)\n", v.Text, humanize.Comma(*v.Millis))
		return nil
	}
	a.printf("%s\n", v.Text)
	return nil
}

// parsePeriodArg reads an ISO period and converts it to typeName when set.
func parsePeriodArg(s, typeName string) (*period.Period, error) {
	p, err := period.Parse(s)
	if err != nil {
		return nil, err
	}
	if typeName == "" {
		return p, nil
	}
	typ, err := parsePeriodType(typeName)
	if err != nil {
		return nil, err
	}
	return period.From(typ, p)
}

func (a *app) addCmd() *cobra.Command {
	var times int
	cmd := &cobra.Command{
		Use:     "add <instant> <period>",
		Short:   "Add an ISO-8601 period such as P1M2DT3H to an instant",
		GroupID: "periods",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parseInstant(args[0])
			if err != nil {
				return err
			}
			p, err := period.Parse(args[1])
			if err != nil {
				return err
			}
			out, err := d.WithPeriodAdded(p, times)
			if err != nil {
				return err
			}
			a.log.Debug("added period", "from", d.Millis(), "to", out.Millis(), "period", p.String(), "times", times)
			return a.printInstant(out)
		},
	}
	cmd.Flags().IntVar(&times, "times", 1, "scalar applied to the period (negative subtracts)")
	return cmd
}

func (a *app) betweenCmd() *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:     "between <start> <end>",
		Short:   "Split the span between two instants into a period",
		GroupID: "periods",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parsePeriodType(typeName)
			if err != nil {
				return err
			}
			start, err := a.parseInstant(args[0])
			if err != nil {
				return err
			}
			end, err := a.parseInstant(args[1])
			if err != nil {
				return err
			}
			p, err := period.Between(start.Millis(), end.Millis(), typ, start.Chronology())
			if err != nil {
				return err
			}
			dur, err := start.DurationTo(end)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{
					"period":          periodViewOf(p),
					"duration":        dur.String(),
					"duration_millis": dur.Millis(),
				})
			}
			a.printf("%s\n", p)
			a.printf("  exact  %s (%s ms)\n", dur, humanize.Comma(dur.Millis()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "Standard", "period type, e.g. Standard, YearMonthDay, DayTime, Days")
	return cmd
}

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "normalize <period>",
		Short:   "Rebuild a precise period from its exact length, so PT25H becomes P1DT1H",
		GroupID: "periods",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			n, err := p.Normalized()
			if err != nil {
				return err
			}
			return a.printPeriod(n)
		},
	}
}
