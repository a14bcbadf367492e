package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sid-client/internal/features/inspection"
	"sid-client/internal/features/inspection/domain"
	"sid-client/internal/server"
)

// servicesCommand builds a one-shot command that prints what run returns.
// A nil result prints {"ok":true}.
func servicesCommand(use, short string, args cobra.PositionalArgs,
	run func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, positional []string) error {
			return runSession(cmd, false, func(ctx context.Context, env *server.Env) error {
				result, err := run(ctx, env.Services, positional)
				if err != nil {
					return err
				}
				if result == nil {
					result = map[string]bool{"ok": true}
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

var (
	searchPage int
	searchSize int
	resultFile string
)

func newProductCommand() *cobra.Command {
	product := &cobra.Command{Use: "product", Short: "Product configuration"}
	product.AddCommand(servicesCommand("associate-tests <product-id> <test-id>...",
		"Add registered tests to a product", cobra.MinimumNArgs(2),
		func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
			return s.Configuration.AssociateTests(ctx, args[0], args[1:])
		}))
	return product
}

func newNormCommand() *cobra.Command {
	norm := &cobra.Command{Use: "norm", Short: "Norm queries"}
	norm.AddCommand(servicesCommand("cfe", "List CFE norms", cobra.NoArgs,
		func(ctx context.Context, s *inspection.Services, _ []string) (interface{}, error) {
			return s.Configuration.CFENorms(ctx)
		}))
	return norm
}

func newContractCommand() *cobra.Command {
	contract := &cobra.Command{Use: "contract", Short: "Contract operations"}
	contract.AddCommand(servicesCommand("status <contract-id> <status>",
		"Change the status of a contract", cobra.ExactArgs(2),
		func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
			return s.Preparation.ChangeContractStatus(ctx, args[0], args[1])
		}))
	return contract
}

func newOrderCommand() *cobra.Command {
	order := &cobra.Command{Use: "order", Short: "Manufacturing order operations"}
	order.AddCommand(servicesCommand("check <order-id>",
		"Check that a manufacturing order is complete", cobra.ExactArgs(1),
		func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
			complete, err := s.Preparation.CheckOrderComplete(ctx, args[0])
			return map[string]bool{"complete": complete}, err
		}))
	return order
}

func newDossierCommand() *cobra.Command {
	dossier := &cobra.Command{Use: "dossier", Short: "Dossier samples, tests and release"}

	addResult := servicesCommand("add-result <dossier> <sample> -f <file>",
		"Record a test result read from a JSON file", cobra.ExactArgs(2),
		func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
			data, err := readRecordFile(os.Stdin, resultFile)
			if err != nil {
				return nil, err
			}
			var result domain.TestResultRequest
			if err := json.Unmarshal(data, &result); err != nil {
				return nil, fmt.Errorf("failed to parse test result: %w", err)
			}
			return nil, s.Execution.AddResult(ctx, args[0], args[1], result)
		})
	addResult.Flags().StringVarP(&resultFile, "file", "f", "", "JSON test result file")
	_ = addResult.MarkFlagRequired("file")

	dossier.AddCommand(
		servicesCommand("add-sample <dossier> <sample>", "Add a sample to a dossier", cobra.ExactArgs(2),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return nil, s.Preparation.AddSample(ctx, args[0], args[1])
			}),
		servicesCommand("remove-sample <dossier> <sample>", "Remove a sample from a dossier", cobra.ExactArgs(2),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return nil, s.Preparation.RemoveSample(ctx, args[0], args[1])
			}),
		addResult,
		servicesCommand("unsatisfactory <dossier>", "List tests that did not pass", cobra.ExactArgs(1),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return s.Execution.UnsatisfactoryTests(ctx, args[0])
			}),
		servicesCommand("validate <dossier>", "Validate a dossier", cobra.ExactArgs(1),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return s.Execution.ValidateDossier(ctx, args[0])
			}),
		servicesCommand("finish <dossier>", "Finish the tests of a dossier", cobra.ExactArgs(1),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return nil, s.Execution.FinishTests(ctx, args[0])
			}),
		servicesCommand("notice <dossier>", "Issue the test notice of a dossier", cobra.ExactArgs(1),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return nil, s.Release.CreateNotice(ctx, args[0])
			}),
		servicesCommand("notices <dossier>", "List the notices of a dossier", cobra.ExactArgs(1),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return s.Release.Notices(ctx, args[0])
			}),
		servicesCommand("close <dossier> <result>", "Close a dossier", cobra.ExactArgs(2),
			func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
				return nil, s.Release.CloseDossier(ctx, args[0], args[1])
			}),
	)
	return dossier
}

func newSearchCommand() *cobra.Command {
	search := servicesCommand("search <text>", "Search dossiers by short description", cobra.ExactArgs(1),
		func(ctx context.Context, s *inspection.Services, args []string) (interface{}, error) {
			return s.Search.ShortDescriptions(ctx, args[0], searchPage, searchSize)
		})
	search.Flags().IntVar(&searchPage, "page", 1, "page number")
	search.Flags().IntVar(&searchSize, "size", 20, "page size")
	return search
}

func init() {
	rootCmd.AddCommand(
		newProductCommand(),
		newNormCommand(),
		newContractCommand(),
		newOrderCommand(),
		newDossierCommand(),
		newSearchCommand(),
	)
}
