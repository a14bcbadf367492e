package service

import (
	"context"
	"fmt"
	"strings"

	"sid-client/internal/common"
	backenddomain "sid-client/internal/features/backend/domain"
	"sid-client/internal/features/inspection/domain"
	"sid-client/internal/features/inspection/resource"
	"sid-client/internal/features/inspection/validation"
)

// ConfigurationService covers the initial configuration stage: instruments,
// norms, tests, documents, products, prototypes and reference values
type ConfigurationService struct {
	Instruments     *resource.Client[domain.Instrument]
	Norms           *resource.Client[domain.Norm]
	Tests           *resource.Client[domain.Test]
	OtherDocuments  *resource.Client[domain.OtherDocument]
	Products        *resource.Client[domain.Product]
	ProductDetails  *resource.Client[domain.ProductDetail]
	Prototypes      *resource.Client[domain.Prototype]
	ReferenceValues *resource.Client[domain.ReferenceValue]
}

// NewConfigurationService creates the configuration stage clients
func NewConfigurationService(caller backenddomain.APICaller, v *validation.Validator) (*ConfigurationService, error) {
	s := &ConfigurationService{}
	var err error

	if s.Instruments, err = resource.NewClient(caller, InstrumentDefinition()); err != nil {
		return nil, err
	}
	if s.Norms, err = resource.NewClient(caller, NormDefinition()); err != nil {
		return nil, err
	}
	if s.Tests, err = resource.NewClient(caller, TestDefinition(v)); err != nil {
		return nil, err
	}
	if s.OtherDocuments, err = resource.NewClient(caller, OtherDocumentDefinition(v)); err != nil {
		return nil, err
	}
	if s.Products, err = resource.NewClient(caller, ProductDefinition(v)); err != nil {
		return nil, err
	}
	if s.ProductDetails, err = resource.NewClient(caller, ProductDetailDefinition()); err != nil {
		return nil, err
	}
	if s.Prototypes, err = resource.NewClient(caller, PrototypeDefinition(v)); err != nil {
		return nil, err
	}
	if s.ReferenceValues, err = resource.NewClient(caller, ReferenceValueDefinition(v)); err != nil {
		return nil, err
	}

	return s, nil
}

// CFENorms returns the norms flagged as CFE norms
func (s *ConfigurationService) CFENorms(ctx context.Context) ([]domain.Norm, error) {
	norms, err := s.Norms.List(ctx, 1, 1)
	if err != nil {
		return nil, err
	}

	cfe := make([]domain.Norm, 0, len(norms))
	for _, norm := range norms {
		if norm.IsCFE {
			cfe = append(cfe, norm)
		}
	}
	return cfe, nil
}

// AssociateTests adds testIDs to the product's tests and writes the full product back.
// Every id must name a registered test; nothing is written otherwise.
func (s *ConfigurationService) AssociateTests(ctx context.Context, productID string, testIDs []string) (domain.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Product{}, common.NewMissingIDError(validation.ResourceProduct)
	}
	if len(testIDs) == 0 {
		return domain.Product{}, common.NewValidationError(validation.ResourceProduct, "pruebas", common.RuleRequired, "",
			"at least one test id is required")
	}

	tests, err := s.Tests.List(ctx, 1, 1)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to list registered tests: %w", err)
	}

	registered := make(map[string]struct{}, len(tests))
	for _, test := range tests {
		registered[test.ID] = struct{}{}
	}

	var unknown []string
	for _, id := range testIDs {
		if _, ok := registered[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return domain.Product{}, common.NewValidationError(validation.ResourceProduct, "pruebas", common.RuleUnknownReference,
			strings.Join(unknown, ", "), "tests are not registered")
	}

	details, err := s.ProductDetails.List(ctx, 1, 1)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to list products: %w", err)
	}

	var product *domain.Product
	for _, detail := range details {
		if detail.ID == productID {
			p := detail.ToProduct()
			product = &p
			break
		}
	}
	if product == nil {
		return domain.Product{}, common.NotFoundError("product %s", productID)
	}

	product.TestIDs = mergeIDs(product.TestIDs, testIDs)

	if _, err := s.Products.Update(ctx, *product); err != nil {
		return domain.Product{}, err
	}

	common.LoggerFromContext(ctx).Info("tests associated to product",
		"productID", productID,
		"tests", len(product.TestIDs))

	return *product, nil
}

// mergeIDs returns existing followed by the ids of added not already present
func mergeIDs(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, ids := range [][]string{existing, added} {
		for _, id := range ids {
			if _, ok := seen[id]; ok || id == "" {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}
