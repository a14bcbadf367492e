package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sid-client/internal/common"
	"sid-client/internal/features/inspection/domain"
)

func assertRule(t *testing.T, err error, field string, rule common.ValidationRule) {
	t.Helper()
	validationErr, ok := common.AsValidationError(err)
	require.True(t, ok, "Expected a ValidationError, got %v", err)
	assert.Equal(t, field, validationErr.Field)
	assert.Equal(t, rule, validationErr.Rule)
}

func TestAllowList(t *testing.T) {
	insensitive := NewAllowList(true, "par", "Car")
	assert.True(t, insensitive.Contains("PAR"))
	assert.True(t, insensitive.Contains("car"))
	assert.False(t, insensitive.Contains("caja"))

	exact := NewAllowList(false, "Prueba Rutina")
	assert.True(t, exact.Contains("Prueba Rutina"))
	assert.False(t, exact.Contains("prueba rutina"))

	values := exact.Values()
	values[0] = "changed"
	assert.Equal(t, []string{"Prueba Rutina"}, exact.Values(), "Values should return a copy")
}

func TestNewRules(t *testing.T) {
	rules := NewRules(Lists{ContractUnits: []string{"caja"}})

	assert.True(t, rules.ContractUnits.Contains("CAJA"), "Overrides keep the default case sensitivity")
	assert.False(t, rules.ContractUnits.Contains("kg"), "Overrides replace the default list")
	assert.True(t, rules.TestTypes.Contains("RUTINA"), "Unset lists keep defaults")
}

func TestValidateContract(t *testing.T) {
	v := NewValidator(DefaultRules())
	contract := domain.Contract{
		Number:       "C-001",
		ContractType: "ContratoCFE",
		Lines:        []domain.ContractLine{{Unit: "KG"}, {Unit: "Car"}},
	}

	require.NoError(t, v.ValidateContract(contract, OperationCreate))

	bad := contract
	bad.Lines = []domain.ContractLine{{Unit: "kg"}, {Unit: "caja"}}
	assertRule(t, v.ValidateContract(bad, OperationCreate), "detalleContrato[1].unidad", common.RuleNotAllowed)

	empty := contract
	empty.Lines = []domain.ContractLine{{Unit: " "}}
	assertRule(t, v.ValidateContract(empty, OperationUpdate), "detalleContrato[0].unidad", common.RuleNotAllowed)

	noNumber := contract
	noNumber.Number = ""
	assertRule(t, v.ValidateContract(noNumber, OperationCreate), "noContrato", common.RuleRequired)
	assert.NoError(t, v.ValidateContract(noNumber, OperationUpdate), "Number is only required on create")

	noType := contract
	noType.ContractType = ""
	assertRule(t, v.ValidateContract(noType, OperationCreate), "tipoContrato", common.RuleRequired)
}

func TestValidateManufacturingOrder(t *testing.T) {
	v := NewValidator(DefaultRules())
	order := domain.ManufacturingOrder{
		Key:       "OF-1",
		Batch:     "L-1",
		ProductID: "p1",
		Lines: []domain.ManufacturingLine{
			{ContractType: "contratocfe", QuantityToManufacture: 1},
		},
	}
	require.NoError(t, v.ValidateManufacturingOrder(order, OperationCreate))

	tests := []struct {
		name   string
		mutate func(*domain.ManufacturingOrder)
		field  string
		rule   common.ValidationRule
	}{
		{"missing key", func(o *domain.ManufacturingOrder) { o.Key = "" }, "claveOrdenFabricacion", common.RuleRequired},
		{"missing batch", func(o *domain.ManufacturingOrder) { o.Batch = "" }, "loteFabricacion", common.RuleRequired},
		{"missing product", func(o *domain.ManufacturingOrder) { o.ProductID = "" }, "idProducto", common.RuleRequired},
		{"no lines", func(o *domain.ManufacturingOrder) { o.Lines = nil }, "detalleFabricacion", common.RuleRequired},
		{"zero quantity", func(o *domain.ManufacturingOrder) {
			o.Lines = []domain.ManufacturingLine{{ContractType: "ContratoCFE", QuantityToManufacture: 0}}
		}, "detalleFabricacion[0].cantidadAFabricar", common.RuleNotPositive},
		{"unknown contract type", func(o *domain.ManufacturingOrder) {
			o.Lines = []domain.ManufacturingLine{{ContractType: "Gobierno", QuantityToManufacture: 3}}
		}, "detalleFabricacion[0].tipoContrato", common.RuleNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := order
			tt.mutate(&candidate)
			assertRule(t, v.ValidateManufacturingOrder(candidate, OperationCreate), tt.field, tt.rule)
		})
	}
}

func TestValidateProduct(t *testing.T) {
	v := NewValidator(DefaultRules())
	product := domain.Product{
		ManufacturingType: "serie",
		NormID:            "n1",
		PrototypeID:       "pr1",
		TestIDs:           []string{"t1"},
	}
	require.NoError(t, v.ValidateProduct(product, OperationCreate))

	bad := product
	bad.ManufacturingType = "GRANEL"
	assertRule(t, v.ValidateProduct(bad, OperationCreate), "tipoFabricacion", common.RuleNotAllowed)

	bad = product
	bad.NormID = ""
	assertRule(t, v.ValidateProduct(bad, OperationCreate), "norma", common.RuleRequired)

	bad = product
	bad.PrototypeID = ""
	assertRule(t, v.ValidateProduct(bad, OperationCreate), "prototipo", common.RuleRequired)

	bad = product
	bad.TestIDs = []string{}
	assertRule(t, v.ValidateProduct(bad, OperationCreate), "pruebas", common.RuleRequired)
}

func TestValidateTest(t *testing.T) {
	v := NewValidator(DefaultRules())
	test := domain.Test{TestType: "RUTINA", ResultType: "pasa/no-pasa", Status: "ACTIVA"}
	require.NoError(t, v.ValidateTest(test, OperationCreate))

	bad := test
	bad.TestType = "DISEÑO"
	assertRule(t, v.ValidateTest(bad, OperationCreate), "tipoPrueba", common.RuleNotAllowed)

	bad = test
	bad.ResultType = "NUMERICO"
	assertRule(t, v.ValidateTest(bad, OperationCreate), "tipoResultado", common.RuleNotAllowed)

	bad = test
	bad.Status = "BORRADOR"
	assertRule(t, v.ValidateTest(bad, OperationUpdate), "estatus", common.RuleNotAllowed)
}

func TestValidateOtherDocument(t *testing.T) {
	v := NewValidator(DefaultRules())

	require.NoError(t, v.ValidateOtherDocument(domain.OtherDocument{DocumentType: "Prueba Rutina"}, OperationCreate))
	assertRule(t, v.ValidateOtherDocument(domain.OtherDocument{DocumentType: "otro"}, OperationCreate),
		"tipoDocumento", common.RuleNotAllowed)
}

func TestValidateReferenceValue(t *testing.T) {
	v := NewValidator(DefaultRules())
	value := domain.ReferenceValue{Comparison: "RANGO", Value: 10, Value2: 10, Unit: "kV"}

	assert.NoError(t, v.ValidateReferenceValue(value, OperationCreate), "value2 == value is accepted")

	value.Value2 = 12
	assert.NoError(t, v.ValidateReferenceValue(value, OperationCreate))

	value.Value2 = 9.99
	assertRule(t, v.ValidateReferenceValue(value, OperationCreate), "valor2", common.RuleRange)

	minimum := domain.ReferenceValue{Comparison: "valor_minimo", Value: 10, Value2: 0, Unit: "kV"}
	assert.NoError(t, v.ValidateReferenceValue(minimum, OperationCreate), "Order only applies to ranges")

	badComparison := domain.ReferenceValue{Comparison: "IGUAL", Unit: "kV"}
	assertRule(t, v.ValidateReferenceValue(badComparison, OperationCreate), "comparacion", common.RuleNotAllowed)

	noUnit := domain.ReferenceValue{Comparison: "NO_COMPARAR"}
	assertRule(t, v.ValidateReferenceValue(noUnit, OperationCreate), "unidad", common.RuleRequired)
}

func TestValidatePrototype(t *testing.T) {
	v := NewValidator(DefaultRules())
	registered := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	equal := domain.Prototype{
		RegisteredAt: domain.NewTimestamp(registered),
		ExpiresAt:    domain.NewTimestamp(registered),
	}
	assertRule(t, v.ValidatePrototype(equal, OperationCreate), "fechaVencimiento", common.RuleOrder)

	later := equal
	later.ExpiresAt = domain.NewTimestamp(registered.Add(time.Second))
	assert.NoError(t, v.ValidatePrototype(later, OperationCreate))

	earlier := equal
	earlier.ExpiresAt = domain.NewTimestamp(registered.Add(-time.Hour))
	assertRule(t, v.ValidatePrototype(earlier, OperationUpdate), "fechaVencimiento", common.RuleOrder)
}

func TestValidateDossier(t *testing.T) {
	v := NewValidator(DefaultRules())

	assertRule(t, v.ValidateDossier(domain.DossierRequest{}, OperationCreate), "claveExpediente", common.RuleRequired)
	assert.NoError(t, v.ValidateDossier(domain.DossierRequest{ID: "d1"}, OperationUpdate))
	assert.NoError(t, v.ValidateDossier(domain.DossierRequest{Key: "EXP-1"}, OperationCreate))
}
