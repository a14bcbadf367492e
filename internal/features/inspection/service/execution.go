package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sid-client/internal/common"
	backenddomain "sid-client/internal/features/backend/domain"
	"sid-client/internal/features/inspection/domain"
	"sid-client/internal/features/inspection/resource"
	"sid-client/internal/features/inspection/validation"
)

// ExecutionService covers the test execution stage of a dossier
type ExecutionService struct {
	caller backenddomain.APICaller
}

// NewExecutionService creates the execution stage service
func NewExecutionService(caller backenddomain.APICaller) (*ExecutionService, error) {
	if caller == nil {
		return nil, common.InvalidInputError("API caller cannot be nil")
	}
	return &ExecutionService{caller: caller}, nil
}

// AddResult records a measurement for one sample of a dossier
func (s *ExecutionService) AddResult(ctx context.Context, dossier, sample string, result domain.TestResultRequest) error {
	if err := requireValues(validation.ResourceDossier, "expediente", dossier, "muestra", sample, "idPrueba", result.TestID); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("expediente", dossier)
	query.Set("muestra", sample)

	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPut, stageExecution+"AgregaResultadoPrueba", query, result, nil)
	return err
}

// UnsatisfactoryTests returns the tests of a dossier that did not pass
func (s *ExecutionService) UnsatisfactoryTests(ctx context.Context, dossier string) ([]domain.Test, error) {
	if err := requireValues(validation.ResourceDossier, "expediente", dossier); err != nil {
		return nil, err
	}

	operation := stageExecution + "PruebasNoSatisfactorias"
	body, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodGet, operation+"/"+url.PathEscape(dossier), nil, nil, nil)
	if err != nil {
		return nil, err
	}

	tests, err := resource.DecodeList[domain.Test](body)
	if err != nil {
		return nil, common.NewDecodeError(operation, err)
	}
	return tests, nil
}

// ValidateDossier asks the backend to validate a dossier and returns its summary
func (s *ExecutionService) ValidateDossier(ctx context.Context, dossier string) (domain.DossierRequest, error) {
	if err := requireValues(validation.ResourceDossier, "expediente", dossier); err != nil {
		return domain.DossierRequest{}, err
	}

	operation := stageExecution + "ValidacionExpediente"
	var summary domain.DossierRequest
	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodGet, operation+"/"+url.PathEscape(dossier), nil, nil, &summary)
	if err != nil {
		return domain.DossierRequest{}, err
	}
	return summary, nil
}

// FinishTests closes the test phase of a dossier
func (s *ExecutionService) FinishTests(ctx context.Context, dossier string) error {
	return s.put(ctx, stageExecution+"TerminarPruebasExpediente", dossier)
}

func (s *ExecutionService) put(ctx context.Context, operation string, segments ...string) error {
	path := operation
	for _, segment := range segments {
		if blank(segment) {
			return common.NewValidationError(validation.ResourceDossier, "expediente", common.RuleRequired, "", "")
		}
		path += "/" + url.PathEscape(segment)
	}
	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPut, path, nil, nil, nil)
	return err
}

// ReleaseService covers the release stage: test notices and dossier closing
type ReleaseService struct {
	caller backenddomain.APICaller
}

// NewReleaseService creates the release stage service
func NewReleaseService(caller backenddomain.APICaller) (*ReleaseService, error) {
	if caller == nil {
		return nil, common.InvalidInputError("API caller cannot be nil")
	}
	return &ReleaseService{caller: caller}, nil
}

// CreateNotice issues the test notice of a dossier
func (s *ReleaseService) CreateNotice(ctx context.Context, dossier string) error {
	if err := requireValues(validation.ResourceDossier, "expediente", dossier); err != nil {
		return err
	}
	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPut,
		stageRelease+"CrearAvisoPrueba/"+url.PathEscape(dossier), nil, nil, nil)
	return err
}

// Notices returns the notices issued for a dossier
func (s *ReleaseService) Notices(ctx context.Context, dossier string) ([]domain.Notice, error) {
	if err := requireValues(validation.ResourceDossier, "expediente", dossier); err != nil {
		return nil, err
	}

	operation := stageRelease + "ConsultaAvisos"
	body, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodGet, operation+"/"+url.PathEscape(dossier), nil, nil, nil)
	if err != nil {
		return nil, err
	}

	notices, err := resource.DecodeList[domain.Notice](body)
	if err != nil {
		return nil, common.NewDecodeError(operation, err)
	}
	return notices, nil
}

// CloseDossier closes a dossier with the given result
func (s *ReleaseService) CloseDossier(ctx context.Context, dossier, result string) error {
	if err := requireValues(validation.ResourceDossier, "expediente", dossier, "resultado", result); err != nil {
		return err
	}
	_, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPut,
		stageRelease+"CierreExpedientePruebas/"+url.PathEscape(dossier)+"/"+url.PathEscape(result), nil, nil, nil)
	return err
}

// SearchService queries short descriptions across dossiers
type SearchService struct {
	caller backenddomain.APICaller
}

// NewSearchService creates the search service
func NewSearchService(caller backenddomain.APICaller) (*SearchService, error) {
	if caller == nil {
		return nil, common.InvalidInputError("API caller cannot be nil")
	}
	return &SearchService{caller: caller}, nil
}

// ShortDescriptions returns one page of dossiers whose short description matches text
func (s *SearchService) ShortDescriptions(ctx context.Context, text string, pageNumber, pageSize int) (resource.Page[domain.ShortDescription], error) {
	if pageNumber < 1 || pageSize < 1 {
		return resource.Page[domain.ShortDescription]{}, common.InvalidInputError("page number and page size must be positive, got %d/%d", pageNumber, pageSize)
	}

	query := url.Values{}
	query.Set("textoBusqueda", text)
	query.Set("pageNumber", strconv.Itoa(pageNumber))
	query.Set("pageSize", strconv.Itoa(pageSize))

	body, err := s.caller.CallAPIAndParseResponse(ctx, http.MethodPost, PathShortDescriptions, query, nil, nil)
	if err != nil {
		return resource.Page[domain.ShortDescription]{}, err
	}

	page, err := resource.DecodePage[domain.ShortDescription](body, "expedientes")
	if err != nil {
		return resource.Page[domain.ShortDescription]{}, common.NewDecodeError(PathShortDescriptions, err)
	}
	return page, nil
}
