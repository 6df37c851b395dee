package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"operation-history/internal/common"
	"operation-history/postal"
)

var (
	messageType int
	latestOnly  bool
)

var getCmd = &cobra.Command{
	Use:   "get BARCODE...",
	Short: "Print the operation history of items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer func() { _ = s.logger.Sync() }()

		for _, barcode := range args {
			req := postal.OperationHistoryRequest{Barcode: barcode, MessageType: messageType}

			data, err := s.client.GetOperationHistory(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s: %w", barcode, err)
			}

			if common.IsEmpty(data.HistoryRecord) {
				s.logger.Info("no operations recorded", zap.String("barcode", barcode))
				continue
			}

			var out any = data
			if latestOnly {
				out, _ = data.Latest()
			}

			if err := printResult(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	getCmd.Flags().IntVar(&messageType, "message-type", 0, "consumer system identifier")
	getCmd.Flags().BoolVar(&latestOnly, "latest", false, "print only the most recent operation")
	rootCmd.AddCommand(getCmd)
}
