package service

import (
	"sid-client/internal/features/inspection/domain"
	"sid-client/internal/features/inspection/resource"
	"sid-client/internal/features/inspection/validation"
)

// Backend stage prefixes
const (
	stageConfiguration = "F1_ConfiguracionInicial/"
	stagePreparation   = "F2_PreparacionFabricacion/"
	stageExecution     = "F3_Pruebas/"
	stageRelease       = "F4_Liberacion/"
)

// Resource paths
const (
	PathInstruments       = stageConfiguration + "Instrumento"
	PathNorms             = stageConfiguration + "Norma"
	PathTests             = stageConfiguration + "Prueba"
	PathOtherDocuments    = stageConfiguration + "OtrasPruebasYDocumentos"
	PathProducts          = stageConfiguration + "Producto"
	PathPrototypes        = stageConfiguration + "Prototipo"
	PathReferenceValues   = stageConfiguration + "ValorReferencia"
	PathShortDescriptions = stageConfiguration + "DescripcionesCortas"
	PathContracts         = stagePreparation + "Contratos"
	PathOrders            = stagePreparation + "OrdenFabricacion"
	PathDossiers          = stagePreparation + "ExpedientePruebas"
)

// InstrumentDefinition describes the instrument resource
func InstrumentDefinition() resource.Definition[domain.Instrument] {
	return resource.Definition[domain.Instrument]{
		Name:      "instrument",
		Path:      PathInstruments,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
	}
}

// NormDefinition describes the norm resource
func NormDefinition() resource.Definition[domain.Norm] {
	return resource.Definition[domain.Norm]{
		Name:      "norm",
		Path:      PathNorms,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
	}
}

// TestDefinition describes the test resource
func TestDefinition(v *validation.Validator) resource.Definition[domain.Test] {
	return resource.Definition[domain.Test]{
		Name:      validation.ResourceTest,
		Path:      PathTests,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
		Validate:  v.ValidateTest,
	}
}

// OtherDocumentDefinition describes the other tests and documents resource
func OtherDocumentDefinition(v *validation.Validator) resource.Definition[domain.OtherDocument] {
	return resource.Definition[domain.OtherDocument]{
		Name:      validation.ResourceOtherDocument,
		Path:      PathOtherDocuments,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
		Validate:  v.ValidateOtherDocument,
	}
}

// ProductDefinition describes product writes
func ProductDefinition(v *validation.Validator) resource.Definition[domain.Product] {
	return resource.Definition[domain.Product]{
		Name:      validation.ResourceProduct,
		Path:      PathProducts,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
		Validate:  v.ValidateProduct,
	}
}

// ProductDetailDefinition describes product reads, which expand related records
func ProductDetailDefinition() resource.Definition[domain.ProductDetail] {
	return resource.Definition[domain.ProductDetail]{
		Name:      validation.ResourceProduct,
		Path:      PathProducts,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
	}
}

// PrototypeDefinition describes the prototype resource
func PrototypeDefinition(v *validation.Validator) resource.Definition[domain.Prototype] {
	return resource.Definition[domain.Prototype]{
		Name:      validation.ResourcePrototype,
		Path:      PathPrototypes,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
		Validate:  v.ValidatePrototype,
	}
}

// ReferenceValueDefinition describes the reference value resource
func ReferenceValueDefinition(v *validation.Validator) resource.Definition[domain.ReferenceValue] {
	return resource.Definition[domain.ReferenceValue]{
		Name:      validation.ResourceReferenceValue,
		Path:      PathReferenceValues,
		ListShape: resource.ListBare,
		GetShape:  resource.GetSingle,
		Validate:  v.ValidateReferenceValue,
	}
}

// ContractDefinition describes the contract resource
func ContractDefinition(v *validation.Validator) resource.Definition[domain.Contract] {
	return resource.Definition[domain.Contract]{
		Name:            validation.ResourceContract,
		Path:            PathContracts,
		ListShape:       resource.ListPaged,
		CollectionField: "contratos",
		GetShape:        resource.GetSingle,
		Validate:        v.ValidateContract,
	}
}

// ManufacturingOrderDefinition describes the manufacturing order resource.
// Get by id and writes answer with a list of orders.
func ManufacturingOrderDefinition(v *validation.Validator) resource.Definition[domain.ManufacturingOrder] {
	return resource.Definition[domain.ManufacturingOrder]{
		Name:             validation.ResourceManufacturingOrder,
		Path:             PathOrders,
		ListShape:        resource.ListPaged,
		CollectionField:  resource.DefaultCollectionField,
		GetShape:         resource.GetList,
		WriteReturnsList: true,
		Validate:         v.ValidateManufacturingOrder,
	}
}

// DossierDefinition describes dossier reads. Get by id answers with a list.
func DossierDefinition() resource.Definition[domain.Dossier] {
	return resource.Definition[domain.Dossier]{
		Name:            validation.ResourceDossier,
		Path:            PathDossiers,
		ListShape:       resource.ListPaged,
		CollectionField: "expedientes",
		GetShape:        resource.GetList,
	}
}

// DossierRequestDefinition describes dossier writes
func DossierRequestDefinition(v *validation.Validator) resource.Definition[domain.DossierRequest] {
	return resource.Definition[domain.DossierRequest]{
		Name:      validation.ResourceDossier,
		Path:      PathDossiers,
		ListShape: resource.ListPaged,
		GetShape:  resource.GetList,
		Validate:  v.ValidateDossier,
	}
}
