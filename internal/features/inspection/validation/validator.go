package validation

import (
	"fmt"
	"strings"

	"sid-client/internal/common"
	"sid-client/internal/features/inspection/domain"
)

// Operation is the write a record is validated for
type Operation int

// Write operations
const (
	OperationCreate Operation = iota
	OperationUpdate
)

func (o Operation) String() string {
	if o == OperationUpdate {
		return "update"
	}
	return "create"
}

// Resource names used in validation errors
const (
	ResourceContract           = "contract"
	ResourceManufacturingOrder = "manufacturing order"
	ResourceProduct            = "product"
	ResourceTest               = "test"
	ResourceOtherDocument      = "other document"
	ResourceReferenceValue     = "reference value"
	ResourcePrototype          = "prototype"
	ResourceDossier            = "dossier"
)

// Validator applies field rules to records before they are written.
// Fields are named by their wire name so errors point into the submitted JSON.
type Validator struct {
	rules Rules
}

// NewValidator creates a validator over the given rules
func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

// Rules returns the rules in use
func (v *Validator) Rules() Rules {
	return v.rules
}

// ValidateContract requires number and type on create and an allowed unit on every line
func (v *Validator) ValidateContract(contract domain.Contract, op Operation) error {
	if op == OperationCreate {
		if blank(contract.Number) {
			return required(ResourceContract, "noContrato")
		}
		if blank(contract.ContractType) {
			return required(ResourceContract, "tipoContrato")
		}
	}

	for i, line := range contract.Lines {
		if blank(line.Unit) || !v.rules.ContractUnits.Contains(line.Unit) {
			return notAllowed(ResourceContract, fmt.Sprintf("detalleContrato[%d].unidad", i), line.Unit, v.rules.ContractUnits)
		}
	}
	return nil
}

// ValidateManufacturingOrder checks header fields and every line
func (v *Validator) ValidateManufacturingOrder(order domain.ManufacturingOrder, _ Operation) error {
	if blank(order.Key) {
		return required(ResourceManufacturingOrder, "claveOrdenFabricacion")
	}
	if blank(order.Batch) {
		return required(ResourceManufacturingOrder, "loteFabricacion")
	}
	if blank(order.ProductID) {
		return required(ResourceManufacturingOrder, "idProducto")
	}
	if len(order.Lines) == 0 {
		return common.NewValidationError(ResourceManufacturingOrder, "detalleFabricacion", common.RuleRequired, "",
			"at least one manufacturing line is required")
	}

	for i, line := range order.Lines {
		if line.QuantityToManufacture <= 0 {
			return common.NewValidationError(ResourceManufacturingOrder,
				fmt.Sprintf("detalleFabricacion[%d].cantidadAFabricar", i),
				common.RuleNotPositive,
				fmt.Sprint(line.QuantityToManufacture),
				"quantity to manufacture must be greater than zero")
		}
		if blank(line.ContractType) || !v.rules.ContractTypes.Contains(line.ContractType) {
			return notAllowed(ResourceManufacturingOrder, fmt.Sprintf("detalleFabricacion[%d].tipoContrato", i),
				line.ContractType, v.rules.ContractTypes)
		}
	}
	return nil
}

// ValidateProduct checks the manufacturing type and the required references
func (v *Validator) ValidateProduct(product domain.Product, _ Operation) error {
	if !v.rules.ManufacturingTypes.Contains(product.ManufacturingType) {
		return notAllowed(ResourceProduct, "tipoFabricacion", product.ManufacturingType, v.rules.ManufacturingTypes)
	}
	if blank(product.NormID) {
		return required(ResourceProduct, "norma")
	}
	if blank(product.PrototypeID) {
		return required(ResourceProduct, "prototipo")
	}
	if len(product.TestIDs) == 0 {
		return common.NewValidationError(ResourceProduct, "pruebas", common.RuleRequired, "",
			"at least one test is required")
	}
	return nil
}

// ValidateTest checks test type, result type and status
func (v *Validator) ValidateTest(test domain.Test, _ Operation) error {
	if !v.rules.TestTypes.Contains(test.TestType) {
		return notAllowed(ResourceTest, "tipoPrueba", test.TestType, v.rules.TestTypes)
	}
	if !v.rules.ResultTypes.Contains(test.ResultType) {
		return notAllowed(ResourceTest, "tipoResultado", test.ResultType, v.rules.ResultTypes)
	}
	if !v.rules.TestStatuses.Contains(test.Status) {
		return notAllowed(ResourceTest, "estatus", test.Status, v.rules.TestStatuses)
	}
	return nil
}

// ValidateOtherDocument checks the document type
func (v *Validator) ValidateOtherDocument(document domain.OtherDocument, _ Operation) error {
	if !v.rules.DocumentTypes.Contains(document.DocumentType) {
		return notAllowed(ResourceOtherDocument, "tipoDocumento", document.DocumentType, v.rules.DocumentTypes)
	}
	return nil
}

// ValidateReferenceValue checks the comparison, range order and unit
func (v *Validator) ValidateReferenceValue(value domain.ReferenceValue, _ Operation) error {
	if !v.rules.Comparisons.Contains(value.Comparison) {
		return notAllowed(ResourceReferenceValue, "comparacion", value.Comparison, v.rules.Comparisons)
	}
	if strings.EqualFold(value.Comparison, ComparisonRange) && value.Value2 < value.Value {
		return common.NewValidationError(ResourceReferenceValue, "valor2", common.RuleRange,
			fmt.Sprint(value.Value2),
			fmt.Sprintf("a %s comparison requires valor2 >= valor (%v)", ComparisonRange, value.Value))
	}
	if blank(value.Unit) {
		return required(ResourceReferenceValue, "unidad")
	}
	return nil
}

// ValidatePrototype requires the expiry to be strictly after the registration date
func (v *Validator) ValidatePrototype(prototype domain.Prototype, _ Operation) error {
	if !prototype.ExpiresAt.After(prototype.RegisteredAt.Time) {
		return common.NewValidationError(ResourcePrototype, "fechaVencimiento", common.RuleOrder,
			prototype.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			"expiry must be after the registration date")
	}
	return nil
}

// ValidateDossier requires a key on create
func (v *Validator) ValidateDossier(dossier domain.DossierRequest, op Operation) error {
	if op == OperationCreate && blank(dossier.Key) {
		return required(ResourceDossier, "claveExpediente")
	}
	return nil
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func required(resource, field string) error {
	return common.NewValidationError(resource, field, common.RuleRequired, "", "")
}

func notAllowed(resource, field, value string, allowed AllowList) error {
	return common.NewValidationError(resource, field, common.RuleNotAllowed, value,
		"allowed values: "+allowed.String())
}
