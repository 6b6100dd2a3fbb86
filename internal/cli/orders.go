package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ibTradeDesk/internal/app"
)

func newOrdersCmd(svc *app.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List every order recorded in the trade ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := svc.OrderHistory(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIMESTAMP\tORDER_ID\tCLIENT_ID\tPERM_ID\tCON_ID\tSYMBOL\tACTION\tSIZE\tTYPE\tLMT_PRICE")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%v\t%s\t%v\n",
					rec.Timestamp.Format("2006-01-02 15:04:05"),
					rec.OrderID, rec.ClientID, rec.PermID, rec.ConID,
					rec.Symbol, rec.Action, rec.Size, rec.OrderType, rec.LimitPrice)
			}
			return w.Flush()
		},
	}
	return cmd
}
