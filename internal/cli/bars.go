package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ibTradeDesk/config"
	"ibTradeDesk/internal/app"
)

func newBarsCmd(svc *app.Service, cfg *config.Config) *cobra.Command {
	var (
		pair       string
		magnitude  int
		unit       string
		barSize    string
		whatToShow string
		useRTH     bool
		endDate    string
		endHour    int
		endMinute  int
		endSecond  int
	)

	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Fetch historical bars for a currency pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.HistoryRequest{
				CurrencyPair:      pair,
				EndDate:           endDate,
				EndHour:           optional(endHour),
				EndMinute:         optional(endMinute),
				EndSecond:         optional(endSecond),
				DurationMagnitude: magnitude,
				DurationUnit:      unit,
				BarSize:           barSize,
				WhatToShow:        whatToShow,
				UseRTH:            useRTH,
			}

			series, err := svc.FetchHistory(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d bars for %s\n", len(series), pair)
			for _, bar := range series {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  O=%.5f H=%.5f L=%.5f C=%.5f\n",
					bar.Timestamp.Format("2006-01-02 15:04:05"), bar.Open, bar.High, bar.Low, bar.Close)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pair, "pair", "AUD.CAD", "currency pair as BASE.QUOTE")
	cmd.Flags().IntVar(&magnitude, "duration", cfg.DefaultDurationMagnitude, "duration magnitude")
	cmd.Flags().StringVar(&unit, "duration-unit", cfg.DefaultDurationUnit, "duration unit: S, D or W")
	cmd.Flags().StringVar(&barSize, "bar-size", cfg.DefaultBarSize, "bar size setting")
	cmd.Flags().StringVar(&whatToShow, "what-to-show", cfg.DefaultWhatToShow, "price basis for the bars")
	cmd.Flags().BoolVar(&useRTH, "rth", false, "restrict to regular trading hours")
	cmd.Flags().StringVar(&endDate, "end-date", "", "end date as YYYY-MM-DD; leave all end flags unset for \"now\"")
	cmd.Flags().IntVar(&endHour, "end-hour", -1, "end hour (0-23)")
	cmd.Flags().IntVar(&endMinute, "end-minute", -1, "end minute (0-59)")
	cmd.Flags().IntVar(&endSecond, "end-second", -1, "end second (0-59)")
	return cmd
}

// optional maps the flag sentinel -1 onto "unset".
func optional(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}
