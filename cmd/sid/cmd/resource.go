package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sid-client/internal/features/inspection"
	"sid-client/internal/features/inspection/resource"
	"sid-client/internal/server"
)

// resourceOps adapts a typed resource client to untyped command input and output
type resourceOps struct {
	list   func(ctx context.Context, page, size int) (interface{}, error)
	get    func(ctx context.Context, id string) (interface{}, error)
	create func(ctx context.Context, data []byte) (interface{}, error)
	update func(ctx context.Context, data []byte) (interface{}, error)
}

type writeResult struct {
	Created bool `json:"created,omitempty"`
	Updated bool `json:"updated,omitempty"`
}

func bind[T resource.Record](client *resource.Client[T]) resourceOps {
	def := client.Definition()

	return resourceOps{
		list: func(ctx context.Context, page, size int) (interface{}, error) {
			if def.ListShape == resource.ListPaged {
				return client.ListPage(ctx, page, size)
			}
			return client.List(ctx, page, size)
		},
		get: func(ctx context.Context, id string) (interface{}, error) {
			if def.GetShape == resource.GetList {
				return client.GetList(ctx, id)
			}
			return client.Get(ctx, id)
		},
		create: func(ctx context.Context, data []byte) (interface{}, error) {
			record, err := decodeRecord[T](data)
			if err != nil {
				return nil, err
			}
			if def.WriteReturnsList {
				return client.CreateList(ctx, record)
			}
			created, err := client.Create(ctx, record)
			return writeResult{Created: created}, err
		},
		update: func(ctx context.Context, data []byte) (interface{}, error) {
			record, err := decodeRecord[T](data)
			if err != nil {
				return nil, err
			}
			if def.WriteReturnsList {
				return client.UpdateList(ctx, record)
			}
			updated, err := client.Update(ctx, record)
			return writeResult{Updated: updated}, err
		},
	}
}

// withWrites keeps the reads of ops and takes the writes of writes
func (ops resourceOps) withWrites(writes resourceOps) resourceOps {
	ops.create = writes.create
	ops.update = writes.update
	return ops
}

func decodeRecord[T any](data []byte) (T, error) {
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("failed to parse record: %w", err)
	}
	return record, nil
}

var resourceBindings = map[string]func(s *inspection.Services) resourceOps{
	"instruments":      func(s *inspection.Services) resourceOps { return bind(s.Configuration.Instruments) },
	"norms":            func(s *inspection.Services) resourceOps { return bind(s.Configuration.Norms) },
	"tests":            func(s *inspection.Services) resourceOps { return bind(s.Configuration.Tests) },
	"other-documents":  func(s *inspection.Services) resourceOps { return bind(s.Configuration.OtherDocuments) },
	"prototypes":       func(s *inspection.Services) resourceOps { return bind(s.Configuration.Prototypes) },
	"reference-values": func(s *inspection.Services) resourceOps { return bind(s.Configuration.ReferenceValues) },
	"contracts":        func(s *inspection.Services) resourceOps { return bind(s.Preparation.Contracts) },
	"orders":           func(s *inspection.Services) resourceOps { return bind(s.Preparation.Orders) },
	"products": func(s *inspection.Services) resourceOps {
		return bind(s.Configuration.ProductDetails).withWrites(bind(s.Configuration.Products))
	},
	"dossiers": func(s *inspection.Services) resourceOps {
		return bind(s.Preparation.Dossiers).withWrites(bind(s.Preparation.DossierWrites))
	},
}

func resourceNames() []string {
	names := make([]string, 0, len(resourceBindings))
	for name := range resourceBindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupResource(name string) (func(s *inspection.Services) resourceOps, error) {
	binding, ok := resourceBindings[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q, expected one of: %s", name, strings.Join(resourceNames(), ", "))
	}
	return binding, nil
}

var (
	pageNumber int
	pageSize   int
	recordFile string
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "List, get, create and update backend records",
	Long:  "Generic access to backend records.\n\nResources: " + strings.Join(resourceNames(), ", "),
}

var resourceListCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "List records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args[0], func(ctx context.Context, ops resourceOps) (interface{}, error) {
			return ops.list(ctx, pageNumber, pageSize)
		})
	},
}

var resourceGetCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Get a record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResource(cmd, args[0], func(ctx context.Context, ops resourceOps) (interface{}, error) {
			return ops.get(ctx, args[1])
		})
	},
}

var resourceCreateCmd = &cobra.Command{
	Use:   "create <resource> -f <file>",
	Short: "Validate and create a record read from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readRecordFile(cmd.InOrStdin(), recordFile)
		if err != nil {
			return err
		}
		return runResource(cmd, args[0], func(ctx context.Context, ops resourceOps) (interface{}, error) {
			return ops.create(ctx, data)
		})
	},
}

var resourceUpdateCmd = &cobra.Command{
	Use:   "update <resource> -f <file>",
	Short: "Validate and replace a record read from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readRecordFile(cmd.InOrStdin(), recordFile)
		if err != nil {
			return err
		}
		return runResource(cmd, args[0], func(ctx context.Context, ops resourceOps) (interface{}, error) {
			return ops.update(ctx, data)
		})
	},
}

func init() {
	resourceListCmd.Flags().IntVar(&pageNumber, "page", 1, "page number for paged resources")
	resourceListCmd.Flags().IntVar(&pageSize, "size", 50, "page size for paged resources")

	for _, c := range []*cobra.Command{resourceCreateCmd, resourceUpdateCmd} {
		c.Flags().StringVarP(&recordFile, "file", "f", "", "JSON record file, - for stdin")
		_ = c.MarkFlagRequired("file")
	}

	resourceCmd.AddCommand(resourceListCmd, resourceGetCmd, resourceCreateCmd, resourceUpdateCmd)
	rootCmd.AddCommand(resourceCmd)
}

func runResource(cmd *cobra.Command, name string, call func(ctx context.Context, ops resourceOps) (interface{}, error)) error {
	binding, err := lookupResource(name)
	if err != nil {
		return err
	}

	return runSession(cmd, false, func(ctx context.Context, env *server.Env) error {
		result, err := call(ctx, binding(env.Services))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	})
}

func readRecordFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	return data, nil
}
