package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sammyhga/SoulsData/internal/bootstrap"
	"github.com/sammyhga/SoulsData/internal/export"
)

func newExportCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write entries to a CSV or Excel file",
		Example: `  soulsctl export --format xlsx
  soulsctl export --format csv --query madina --out madina.csv`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			format, err := export.ParseFormat(v.GetString("format"))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			comps, err := bootstrap.NewComponents(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer comps.Close()

			entries, err := comps.Entries.All(cmd.Context(), v.GetString("query"))
			if err != nil {
				return err
			}

			loc := comps.Engine.Location()
			out := v.GetString("out")
			if out == "" {
				out = export.FileName(format, time.Now().In(loc))
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer func() { err = errors.Join(err, f.Close()) }()

			if err = export.Write(f, format, entries, loc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), out)
			return nil
		},
	}

	cmd.Flags().String("format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().String("out", "", "output file (default soul_entries_<date>.<format>)")
	cmd.Flags().String("query", "", "only export entries matching this search term")
	return cmd
}
