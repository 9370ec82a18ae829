package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	var (
		dbPath   string
		calendar string
		zone     string
		debug    bool
	)

	root := &cobra.Command{
		Use:           "chrono",
		Short:         "Calendar arithmetic across calendar systems and time zones",
		Long:          "chrono reads and rewrites the fields of instants, splits spans into periods,\nand saves labelled instants and periods to a local database.\n\nEnvironment:\n" + configUsage(),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("db") {
				cfg.DB = dbPath
			}
			if flags.Changed("calendar") {
				cfg.Calendar = calendar
			}
			if flags.Changed("zone") {
				cfg.Zone = zone
			}
			if flags.Changed("debug") {
				cfg.Debug = debug
			}
			a.cfg = cfg
			a.log = newLogger(a.errOut, cfg.Debug)
			a.log.Debug("config", "db", cfg.DB, "calendar", cfg.Calendar, "zone", cfg.Zone)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.Close()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&dbPath, "db", "", "SQLite database path (overrides CHRONO_DB)")
	pf.StringVarP(&calendar, "calendar", "c", "", "calendar system (overrides CHRONO_CALENDAR)")
	pf.StringVarP(&zone, "zone", "z", "", "zone ID (overrides CHRONO_ZONE)")
	pf.BoolVar(&debug, "debug", false, "log debug output to stderr")
	pf.BoolVar(&a.jsonOut, "json", false, "JSON output")

	root.AddGroup(
		&cobra.Group{ID: "fields", Title: "Fields:"},
		&cobra.Group{ID: "periods", Title: "Periods:"},
		&cobra.Group{ID: "store", Title: "Saved values:"},
	)
	root.AddCommand(
		a.showCmd(), a.getCmd(), a.setCmd(), a.rollCmd(), a.roundCmd(), a.diffCmd(), a.zoneCmd(),
		a.addCmd(), a.betweenCmd(), a.normalizeCmd(),
		a.saveCmd(), a.savePeriodCmd(), a.listCmd(), a.rmCmd(),
	)
	return root
}
