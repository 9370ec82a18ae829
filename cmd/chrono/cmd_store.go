package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/daviddao/chronology/pkg/model"
	"github.com/daviddao/chronology/pkg/store"
)

func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "save <label> <instant>",
		Short:   "Save an instant under a label; use it later as @label",
		GroupID: "store",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parseInstant(args[1])
			if err != nil {
				return err
			}
			db, err := a.db()
			if err != nil {
				return err
			}
			st := model.NewStamp(args[0], d)
			if err := db.SaveStamp(&st); err != nil {
				return err
			}
			a.log.Debug("saved stamp", "id", st.ID, "seq", st.Seq)
			if a.jsonOut {
				return a.printJSON(st)
			}
			a.printf("saved %s = %s\n", st.Label, d)
			return nil
		},
	}
}

func (a *app) savePeriodCmd() *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:     "save-period <label> <period>",
		Short:   "Save an ISO-8601 period under a label",
		GroupID: "store",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePeriodArg(args[1], typeName)
			if err != nil {
				return err
			}
			r, err := model.NewPeriodRecord(args[0], p)
			if err != nil {
				return err
			}
			db, err := a.db()
			if err != nil {
				return err
			}
			if err := db.SavePeriod(&r); err != nil {
				return err
			}
			same, err := db.FindPeriodsByDigest(r.Digest)
			if err != nil {
				return err
			}
			var others []string
			for _, o := range same {
				if o.Label != r.Label {
					others = append(others, o.Label)
				}
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{"record": r, "same_as": others})
			}
			a.printf("saved %s = %s\n", r.Label, r.Text)
			if len(others) > 0 {
				a.printf("  same value as %v\n", others)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "store with this period type instead of Standard")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List saved instants in time order, then saved periods",
		GroupID: "store",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			stamps, err := db.ListStamps()
			if err != nil {
				return err
			}
			periods, err := db.ListPeriods()
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(map[string]any{"stamps": stamps, "periods": periods})
			}
			a.printf("stamps (%s):\n", humanize.Comma(db.CountStamps()))
			for _, st := range stamps {
				text := st.Chronology
				if d, err := st.DateTime(); err == nil {
					text = d.String()
				} else {
					a.log.Warn("cannot rebuild stamp", "label", st.Label, "err", err)
				}
				a.printf("  %-20s %-32s saved %s\n", st.Label, text, humanize.Time(st.CreatedAt))
			}
			a.printf("periods (%d):\n", len(periods))
			for _, r := range periods {
				a.printf("  %-20s %-32s saved %s\n", r.Label, r.Text, humanize.Time(r.CreatedAt))
			}
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	var isPeriod bool
	cmd := &cobra.Command{
		Use:     "rm <label>",
		Short:   "Delete a saved instant, or a saved period with --period",
		GroupID: "store",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			kind := "instant"
			if isPeriod {
				kind = "period"
				err = db.DeletePeriod(args[0])
			} else {
				err = db.DeleteStamp(args[0])
			}
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no saved %s named %q", kind, args[0])
			}
			if err != nil {
				return err
			}
			a.printf("deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&isPeriod, "period", false, "delete a saved period")
	return cmd
}
