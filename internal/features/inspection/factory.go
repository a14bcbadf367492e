package inspection

import (
	backenddomain "sid-client/internal/features/backend/domain"
	"sid-client/internal/features/inspection/service"
	"sid-client/internal/features/inspection/validation"
)

// Services groups the per-stage services bound to one authenticated caller
type Services struct {
	Configuration *service.ConfigurationService
	Preparation   *service.PreparationService
	Execution     *service.ExecutionService
	Release       *service.ReleaseService
	Search        *service.SearchService
	Validator     *validation.Validator
}

// NewServices creates every stage service against caller, validating writes with rules
func NewServices(caller backenddomain.APICaller, rules validation.Rules) (*Services, error) {
	validator := validation.NewValidator(rules)

	configuration, err := service.NewConfigurationService(caller, validator)
	if err != nil {
		return nil, err
	}

	preparation, err := service.NewPreparationService(caller, validator)
	if err != nil {
		return nil, err
	}

	execution, err := service.NewExecutionService(caller)
	if err != nil {
		return nil, err
	}

	release, err := service.NewReleaseService(caller)
	if err != nil {
		return nil, err
	}

	search, err := service.NewSearchService(caller)
	if err != nil {
		return nil, err
	}

	return &Services{
		Configuration: configuration,
		Preparation:   preparation,
		Execution:     execution,
		Release:       release,
		Search:        search,
		Validator:     validator,
	}, nil
}
