package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sid-client/internal/common"
	backenddomain "sid-client/internal/features/backend/domain"
	"sid-client/internal/features/inspection/validation"
)

// Client performs list, get, create and update calls against one backend resource.
// It holds no per-call state and is safe for concurrent use.
type Client[T Record] struct {
	caller backenddomain.APICaller
	def    Definition[T]
}

// NewClient creates a client for the resource described by def
func NewClient[T Record](caller backenddomain.APICaller, def Definition[T]) (*Client[T], error) {
	if caller == nil {
		return nil, common.InvalidInputError("API caller cannot be nil")
	}
	if strings.TrimSpace(def.Path) == "" {
		return nil, common.InvalidInputError("resource path cannot be empty")
	}
	if def.Name == "" {
		def.Name = def.Path
	}
	return &Client[T]{caller: caller, def: def}, nil
}

// Definition returns the resource definition
func (c *Client[T]) Definition() Definition[T] {
	return c.def
}

// List returns the records of one page. Bare resources return the full collection.
func (c *Client[T]) List(ctx context.Context, pageNumber, pageSize int) ([]T, error) {
	page, err := c.ListPage(ctx, pageNumber, pageSize)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListPage returns one page with its totals. Bare resources report a single page.
func (c *Client[T]) ListPage(ctx context.Context, pageNumber, pageSize int) (Page[T], error) {
	var query url.Values
	if c.def.ListShape == ListPaged {
		if pageNumber < 1 || pageSize < 1 {
			return Page[T]{}, common.InvalidInputError("page number and page size must be positive, got %d/%d", pageNumber, pageSize)
		}
		query = url.Values{}
		query.Set("pageNumber", strconv.Itoa(pageNumber))
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	body, err := c.caller.CallAPIAndParseResponse(ctx, http.MethodGet, c.def.Path, query, nil, nil)
	if err != nil {
		return Page[T]{}, err
	}

	if c.def.ListShape == ListPaged {
		page, err := DecodePage[T](body, c.def.collectionField())
		if err != nil {
			return Page[T]{}, common.NewDecodeError(c.operation("list"), err)
		}
		return page, nil
	}

	items, err := DecodeList[T](body)
	if err != nil {
		return Page[T]{}, common.NewDecodeError(c.operation("list"), err)
	}
	return Page[T]{Total: len(items), PageNumber: 1, PageSize: len(items), Items: items}, nil
}

// Get returns the record with the given id. Only valid for single-shaped resources.
func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if c.def.GetShape != GetSingle {
		return zero, common.InvalidInputError("%s returns a list by id, use GetList", c.def.Name)
	}

	body, err := c.getByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if len(strings.TrimSpace(string(body))) == 0 || strings.TrimSpace(string(body)) == "null" {
		return zero, common.NotFoundError("%s %s", c.def.Name, id)
	}

	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return zero, common.NewDecodeError(c.operation("get"), err)
	}
	return record, nil
}

// GetList returns the records the backend holds for the given id. Only valid for
// list-shaped resources such as dossiers and manufacturing orders.
func (c *Client[T]) GetList(ctx context.Context, id string) ([]T, error) {
	if c.def.GetShape != GetList {
		return nil, common.InvalidInputError("%s returns a single record by id, use Get", c.def.Name)
	}

	body, err := c.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := DecodeList[T](body)
	if err != nil {
		return nil, common.NewDecodeError(c.operation("get"), err)
	}
	return records, nil
}

// Create validates record and stores it. A record carrying an id is rejected.
func (c *Client[T]) Create(ctx context.Context, record T) (bool, error) {
	if _, err := c.write(ctx, http.MethodPost, validation.OperationCreate, record); err != nil {
		return false, err
	}
	return true, nil
}

// CreateList creates record and returns the records the backend answers with
func (c *Client[T]) CreateList(ctx context.Context, record T) ([]T, error) {
	if !c.def.WriteReturnsList {
		return nil, common.InvalidInputError("%s does not return records on create, use Create", c.def.Name)
	}
	body, err := c.write(ctx, http.MethodPost, validation.OperationCreate, record)
	if err != nil {
		return nil, err
	}
	return c.decodeWritten(body, "create")
}

// Update validates record and replaces the stored one. The record id is required.
func (c *Client[T]) Update(ctx context.Context, record T) (bool, error) {
	if _, err := c.write(ctx, http.MethodPut, validation.OperationUpdate, record); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateList updates record and returns the records the backend answers with
func (c *Client[T]) UpdateList(ctx context.Context, record T) ([]T, error) {
	if !c.def.WriteReturnsList {
		return nil, common.InvalidInputError("%s does not return records on update, use Update", c.def.Name)
	}
	body, err := c.write(ctx, http.MethodPut, validation.OperationUpdate, record)
	if err != nil {
		return nil, err
	}
	return c.decodeWritten(body, "update")
}

func (c *Client[T]) getByID(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, common.InvalidInputError("%s id cannot be empty", c.def.Name)
	}
	return c.caller.CallAPIAndParseResponse(ctx, http.MethodGet, c.def.Path+"/"+url.PathEscape(id), nil, nil, nil)
}

// write runs the local checks and sends record. Nothing reaches the network when a check fails.
func (c *Client[T]) write(ctx context.Context, method string, op validation.Operation, record T) ([]byte, error) {
	id := strings.TrimSpace(record.RecordID())
	switch op {
	case validation.OperationCreate:
		if id != "" {
			return nil, common.NewValidationError(c.def.Name, "id", common.RuleUnexpectedID, id,
				"a create must not carry an identifier")
		}
	case validation.OperationUpdate:
		if id == "" {
			return nil, common.NewMissingIDError(c.def.Name)
		}
	}

	if c.def.Validate != nil {
		if err := c.def.Validate(record, op); err != nil {
			return nil, err
		}
	}

	body, err := c.caller.CallAPIAndParseResponse(ctx, method, c.def.Path, nil, record, nil)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Debug("resource written",
		"resource", c.def.Name,
		"operation", op.String(),
		"id", id)
	return body, nil
}

func (c *Client[T]) decodeWritten(body []byte, action string) ([]T, error) {
	records, err := DecodeList[T](body)
	if err != nil {
		return nil, common.NewDecodeError(c.operation(action), err)
	}
	return records, nil
}

func (c *Client[T]) operation(action string) string {
	return fmt.Sprintf("%s %s", action, c.def.Name)
}
