package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Page is one page of a paged list
type Page[T any] struct {
	Total      int `json:"total"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	Items      []T `json:"items"`
}

// Alternative spellings the backend uses for envelope fields
var (
	pageNumberFields = []string{"pageNumber", "paginaActual"}
	pageSizeFields   = []string{"pageSize", "tamañoPagina", "tamanioPagina", "tamańoPagina"}
	totalFields      = []string{"total"}
)

// DecodePage decodes a page envelope whose records live under field.
// A missing or null collection decodes to an empty slice.
func DecodePage[T any](body []byte, field string) (Page[T], error) {
	page := Page[T]{Items: []T{}}
	if len(bytes.TrimSpace(body)) == 0 {
		return page, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Page[T]{}, fmt.Errorf("page envelope: %w", err)
	}

	if err := decodeField(envelope, totalFields, &page.Total); err != nil {
		return Page[T]{}, err
	}
	if err := decodeField(envelope, pageNumberFields, &page.PageNumber); err != nil {
		return Page[T]{}, err
	}
	if err := decodeField(envelope, pageSizeFields, &page.PageSize); err != nil {
		return Page[T]{}, err
	}

	items, err := DecodeList[T](lookup(envelope, []string{field}))
	if err != nil {
		return Page[T]{}, fmt.Errorf("page field %q: %w", field, err)
	}
	page.Items = items

	if page.PageSize > 0 && len(page.Items) > page.PageSize {
		return Page[T]{}, fmt.Errorf("page holds %d items but page size is %d", len(page.Items), page.PageSize)
	}
	return page, nil
}

// DecodeList decodes a JSON array; empty input and null decode to an empty slice
func DecodeList[T any](data []byte) ([]T, error) {
	items := []T{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeField(envelope map[string]json.RawMessage, names []string, target *int) error {
	raw := lookup(envelope, names)
	if raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("page field %q: %w", names[0], err)
	}
	return nil
}

// lookup finds the first of names in envelope, ignoring case
func lookup(envelope map[string]json.RawMessage, names []string) json.RawMessage {
	for _, name := range names {
		if raw, ok := envelope[name]; ok {
			return raw
		}
	}
	for key, raw := range envelope {
		for _, name := range names {
			if strings.EqualFold(key, name) {
				return raw
			}
		}
	}
	return nil
}
