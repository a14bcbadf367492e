package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"sid-client/internal/common"
	backenddomain "sid-client/internal/features/backend/domain"
	"sid-client/internal/features/inspection/domain"
	"sid-client/internal/features/inspection/resource"
	"sid-client/internal/features/inspection/validation"
)

// contractLookupPageSize bounds the single page scanned when looking a contract up by id
const contractLookupPageSize = 1000

// PreparationService covers the manufacturing preparation stage: contracts,
// manufacturing orders and inspection dossiers
type PreparationService struct {
	Contracts     *resource.Client[domain.Contract]
	Orders        *resource.Client[domain.ManufacturingOrder]
	Dossiers      *resource.Client[domain.Dossier]
	DossierWrites *resource.Client[domain.DossierRequest]

	caller backenddomain.APICaller
}

// NewPreparationService creates the preparation stage clients
func NewPreparationService(caller backenddomain.APICaller, v *validation.Validator) (*PreparationService, error) {
	s := &PreparationService{caller: caller}
	var err error

	if s.Contracts, err = resource.NewClient(caller, ContractDefinition(v)); err != nil {
		return nil, err
	}
	if s.Orders, err = resource.NewClient(caller, ManufacturingOrderDefinition(v)); err != nil {
		return nil, err
	}
	if s.Dossiers, err = resource.NewClient(caller, DossierDefinition()); err != nil {
		return nil, err
	}
	if s.DossierWrites, err = resource.NewClient(caller, DossierRequestDefinition(v)); err != nil {
		return nil, err
	}

	return s, nil
}

// ChangeContractStatus sets the status of a contract and writes it back
func (s *PreparationService) ChangeContractStatus(ctx context.Context, contractID, status string) (domain.Contract, error) {
	if strings.TrimSpace(contractID) == "" {
		return domain.Contract{}, common.NewMissingIDError(validation.ResourceContract)
	}
	if strings.TrimSpace(status) == "" {
		return domain.Contract{}, common.NewValidationError(validation.ResourceContract, "estatus", common.RuleRequired, "", "")
	}

	contracts, err := s.Contracts.List(ctx, 1, contractLookupPageSize)
	if err != nil {
		return domain.Contract{}, err
	}

	for _, contract := range contracts {
		if contract.ID != contractID {
			continue
		}
		contract.Status = status
		if _, err := s.Contracts.Update(ctx, contract); err != nil {
			return domain.Contract{}, err
		}
		return contract, nil
	}

	return domain.Contract{}, common.NotFoundError("contract %s", contractID)
}

// CheckOrderComplete reports whether every order stored under orderID carries
// its id, key, batch, product and at least one line
func (s *PreparationService) CheckOrderComplete(ctx context.Context, orderID string) (bool, error) {
	orders, err := s.Orders.GetList(ctx, orderID)
	if err != nil {
		return false, err
	}
	if len(orders) == 0 {
		return false, nil
	}

	for _, order := range orders {
		if blank(order.ID) || blank(order.Key) || blank(order.Batch) || blank(order.ProductID) || len(order.Lines) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// AddSample adds a sample identifier to a dossier
func (s *PreparationService) AddSample(ctx context.Context, dossierKey, sample string) error {
	if err := requireValues(validation.ResourceDossier, "claveExpediente", dossierKey, "muestra", sample); err != nil {
		return err
	}

	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPut,
		stagePreparation+"AgregaMuestraExpediente/"+url.PathEscape(dossierKey), nil, sample, nil)
	return err
}

// RemoveSample removes a sample identifier from a dossier
func (s *PreparationService) RemoveSample(ctx context.Context, dossierKey, sample string) error {
	if err := requireValues(validation.ResourceDossier, "claveExpediente", dossierKey, "muestra", sample); err != nil {
		return err
	}

	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPut,
		stagePreparation+"QuitarMuestraExpediente/"+url.PathEscape(dossierKey)+"/"+url.PathEscape(sample), nil, nil, nil)
	return err
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// requireValues takes field/value pairs and fails on the first blank value
func requireValues(resourceName string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if blank(pairs[i+1]) {
			return common.NewValidationError(resourceName, pairs[i], common.RuleRequired, "", "")
		}
	}
	return nil
}
