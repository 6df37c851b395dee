package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"operation-history/hydrate"
	"operation-history/postal"
)

var updateCmd = &cobra.Command{
	Use:   "update REQUEST.yaml",
	Short: "Replace a recorded operation",
	Long: `update sends the UpdateOperationRequest described by a YAML file, e.g.

  RequestType: "1"
  ReasonDescription: wrong office index
  InitiatorDepartment: 101000
  ExecutorIP: 10.0.0.1
  SourceOperation:
    AddressParameters:
      OperationAddress: {Index: "101001"}
  TargetOperation:
    AddressParameters:
      OperationAddress: {Index: "101000"}

Values are coerced like service responses, so "101000" and 101000 are both accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer func() { _ = s.logger.Sync() }()

		req, err := loadUpdateRequest(args[0], s)
		if err != nil {
			return err
		}

		data, err := s.client.UpdateOperationData(cmd.Context(), req)
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), data)
	},
}

func loadUpdateRequest(path string, s *session) (postal.UpdateOperationRequest, error) {
	def := hydrate.Default[postal.UpdateOperationRequest]()

	raw, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	var tree hydrate.Tree
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return def, fmt.Errorf("failed to parse request YAML: %w", err)
	}

	req, diags, err := hydrate.Diagnose(def, tree, s.cfg.HydrationOptions()...)
	for _, d := range append(diags.Warnings, diags.Infos...) {
		s.logger.Warn("request file", zap.String("diagnostic", d.String()))
	}

	if err != nil {
		return def, fmt.Errorf("invalid request file %s: %w", path, err)
	}

	return req, nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
