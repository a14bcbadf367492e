package domain

import "encoding/json"

// Instrument is a calibrated measuring instrument
type Instrument struct {
	ID                string    `json:"id,omitempty"`
	Name              string    `json:"nombre"`
	SerialNumber      string    `json:"numeroSerie"`
	CalibratedAt      Timestamp `json:"fechaCalibracion"`
	CalibrationExpiry Timestamp `json:"fechaVencimientoCalibracion"`
	FileURL           string    `json:"urlArchivo"`
	MD5               string    `json:"md5"`
	Status            string    `json:"estatus"`
	RegisteredAt      Timestamp `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (i Instrument) RecordID() string { return i.ID }

// Norm is a technical standard products are built against
type Norm struct {
	ID           string    `json:"id,omitempty"`
	Key          string    `json:"clave"`
	Name         string    `json:"nombre"`
	Edition      string    `json:"edicion"`
	Status       string    `json:"estatus"`
	IsCFE        bool      `json:"esCFE"`
	RegisteredAt Timestamp `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (n Norm) RecordID() string { return n.ID }

// Test is a test definition from the catalogue
type Test struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"nombre"`
	Status       string    `json:"estatus"`
	TestType     string    `json:"tipoPrueba"`
	ResultType   string    `json:"tipoResultado"`
	RegisteredAt Timestamp `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (t Test) RecordID() string { return t.ID }

// OtherDocument is a supporting test or document such as a material certificate
type OtherDocument struct {
	ID           string    `json:"id,omitempty"`
	DocumentType string    `json:"tipoDocumento"`
	Description  string    `json:"descripcionDocumento"`
	FileURL      string    `json:"urlArchivo"`
	MD5          string    `json:"md5"`
	Status       string    `json:"estatus"`
	ValidUntil   Timestamp `json:"vigencia"`
	RegisteredAt Timestamp `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (d OtherDocument) RecordID() string { return d.ID }

// Product is the write form of a product; related records are referenced by id
type Product struct {
	ID                string    `json:"id,omitempty"`
	ManufacturerCode  string    `json:"codigoFabricante"`
	Description       string    `json:"descripcion"`
	ShortDescription  string    `json:"descripcionCorta"`
	ManufacturingType string    `json:"tipoFabricacion"`
	Unit              string    `json:"unidad"`
	NormID            string    `json:"norma"`
	PrototypeID       string    `json:"prototipo"`
	Status            string    `json:"estatus"`
	RegisteredAt      Timestamp `json:"fechaRegistro"`
	TestIDs           []string  `json:"pruebas"`
}

// RecordID returns the server-assigned identifier
func (p Product) RecordID() string { return p.ID }

// ProductDetail is the read form of a product with its related records expanded
type ProductDetail struct {
	ID                string     `json:"id,omitempty"`
	ManufacturerCode  string     `json:"codigoFabricante"`
	Description       string     `json:"descripcion"`
	ShortDescription  string     `json:"descripcionCorta"`
	ManufacturingType string     `json:"tipoFabricacion"`
	Unit              string     `json:"unidad"`
	Norm              *Norm      `json:"norma"`
	Prototype         *Prototype `json:"prototipo"`
	Status            string     `json:"estatus"`
	RegisteredAt      Timestamp  `json:"fechaRegistro"`
	Tests             []Test     `json:"pruebas"`
}

// RecordID returns the server-assigned identifier
func (p ProductDetail) RecordID() string { return p.ID }

// ToProduct collapses the expanded relations into their identifiers
func (p ProductDetail) ToProduct() Product {
	product := Product{
		ID:                p.ID,
		ManufacturerCode:  p.ManufacturerCode,
		Description:       p.Description,
		ShortDescription:  p.ShortDescription,
		ManufacturingType: p.ManufacturingType,
		Unit:              p.Unit,
		Status:            p.Status,
		RegisteredAt:      p.RegisteredAt,
		TestIDs:           make([]string, 0, len(p.Tests)),
	}
	if p.Norm != nil {
		product.NormID = p.Norm.ID
	}
	if p.Prototype != nil {
		product.PrototypeID = p.Prototype.ID
	}
	for _, test := range p.Tests {
		product.TestIDs = append(product.TestIDs, test.ID)
	}
	return product
}

// Prototype is an approved product prototype with a validity window
type Prototype struct {
	ID           string    `json:"id,omitempty"`
	Number       string    `json:"numero"`
	IssuedAt     Timestamp `json:"fechaEmision"`
	ExpiresAt    Timestamp `json:"fechaVencimiento"`
	FileURL      string    `json:"urlArchivo"`
	MD5          string    `json:"md5"`
	Status       string    `json:"estatus"`
	RegisteredAt Timestamp `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (p Prototype) RecordID() string { return p.ID }

// ReferenceValue is the acceptance criterion a measurement is compared against
type ReferenceValue struct {
	ID           string    `json:"id,omitempty"`
	ProductID    string    `json:"idProducto"`
	TestID       string    `json:"idPrueba"`
	Value        float64   `json:"valor"`
	Value2       float64   `json:"valor2"`
	Unit         string    `json:"unidad"`
	Comparison   string    `json:"comparacion"`
	RegisteredAt Timestamp `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (v ReferenceValue) RecordID() string { return v.ID }

// Contract covers CFE, CFE-with-guarantee and private contracts.
// Kind carries the backend type discriminator.
type Contract struct {
	Kind         string         `json:"$Tipo,omitempty"`
	ID           string         `json:"id,omitempty"`
	ContractType string         `json:"tipoContrato"`
	Number       string         `json:"noContrato"`
	Status       string         `json:"estatus"`
	Lines        []ContractLine `json:"detalleContrato"`

	// CFE contracts only
	FileURL         string     `json:"urlArchivo,omitempty"`
	MD5             string     `json:"md5,omitempty"`
	CFEDeliveryDate *Timestamp `json:"fechaEntregaCFE,omitempty"`

	// CFE-with-guarantee contracts only
	GuaranteedNoLoadLosses *float64 `json:"perdidasGarantizadasVacio,omitempty"`
	GuaranteedLoadLosses   *float64 `json:"perdidasGarantizadasCarga,omitempty"`
}

// RecordID returns the server-assigned identifier
func (c Contract) RecordID() string { return c.ID }

// ContractLine is one item of a contract
type ContractLine struct {
	Item               string  `json:"partidaContrato"`
	NoticeDescription  string  `json:"descripcionAviso"`
	CFEDestinationArea string  `json:"areaDestinoCFE,omitempty"`
	Quantity           int     `json:"cantidad"`
	Unit               string  `json:"unidad"`
	TotalAmount        float64 `json:"importeTotal"`
}

// ManufacturingOrder instructs production of a product against contract lines
type ManufacturingOrder struct {
	ID        string              `json:"id,omitempty"`
	Key       string              `json:"claveOrdenFabricacion"`
	Batch     string              `json:"loteFabricacion"`
	ProductID string              `json:"idProducto"`
	Lines     []ManufacturingLine `json:"detalleFabricacion"`
}

// RecordID returns the server-assigned identifier
func (o ManufacturingOrder) RecordID() string { return o.ID }

// ManufacturingLine ties a quantity to manufacture to one contract line
type ManufacturingLine struct {
	ContractID            string `json:"contratoId"`
	ContractType          string `json:"tipoContrato"`
	ContractItemID        string `json:"partidaContratoId"`
	ItemDescription       string `json:"descripcionPartida"`
	Unit                  string `json:"unidad"`
	OriginalQuantity      int    `json:"cantidadOriginalContrato"`
	QuantityToManufacture int    `json:"cantidadAFabricar"`
}

// DossierRequest is the write form of an inspection dossier
type DossierRequest struct {
	ID            string   `json:"id,omitempty"`
	Key           string   `json:"claveExpediente"`
	OrderID       string   `json:"ordenFabricacion"`
	SampleCount   int      `json:"cantidadMuestras"`
	MaxRejections int      `json:"maximoRechazos"`
	Samples       []string `json:"muestras"`
}

// RecordID returns the server-assigned identifier
func (d DossierRequest) RecordID() string { return d.ID }

// Dossier is the read form of an inspection dossier
type Dossier struct {
	ID              string              `json:"id,omitempty"`
	Key             string              `json:"claveExpediente"`
	Samples         []Sample            `json:"muestrasExpediente"`
	SampleSize      int                 `json:"tamanioMuestra"`
	MaxRejections   int                 `json:"maximoRechazos"`
	SamplingType    string              `json:"tipoMuestreo"`
	TestResults     string              `json:"resultadosPruebas"`
	Order           *ManufacturingOrder `json:"ordenFabricacion"`
	Notices         []string            `json:"avisosPrueba"`
	TestStatus      string              `json:"estatusPruebas"`
	Result          string              `json:"resultadoExpediente"`
	TestsStartedAt  Timestamp           `json:"inicioPruebas"`
	TestsFinishedAt Timestamp           `json:"finPruebas"`
	RegisteredAt    Timestamp           `json:"fechaRegistro"`
}

// RecordID returns the server-assigned identifier
func (d Dossier) RecordID() string { return d.ID }

// Sample is one tested unit within a dossier
type Sample struct {
	Identifier string       `json:"identificador"`
	Status     string       `json:"estatus"`
	Results    []TestResult `json:"resultadosPruebas"`
}

// TestResult is a recorded measurement. Related records are read-only references.
type TestResult struct {
	Test           *Test           `json:"prueba"`
	ReferenceValue *ReferenceValue `json:"valorReferencia"`
	TestedAt       Timestamp       `json:"fechaPrueba"`
	Instrument     *Instrument     `json:"instrumentoMedicion"`
	MeasuredValue  float64         `json:"valorMedido"`
	Result         string          `json:"resultado"`
	Attempt        int             `json:"numeroIntento"`
}

// TestResultRequest records a measurement against a dossier sample
type TestResultRequest struct {
	TestID           string    `json:"idPrueba"`
	ReferenceValueID string    `json:"idValorReferencia"`
	TestedAt         Timestamp `json:"fechaPrueba"`
	Operator         string    `json:"operadorPrueba"`
	InstrumentID     string    `json:"idInstrumentoMedicion"`
	MeasuredValue    float64   `json:"valorMedido"`
	Result           string    `json:"resultado"`
	Attempt          int       `json:"numeroIntento"`
}

// Notice is a test notice issued when a dossier is released
type Notice struct {
	ID                string            `json:"id"`
	Number            int               `json:"aviso"`
	ApprovalNumber    string            `json:"numApProv"`
	FamilyID          string            `json:"familia_ID"`
	UnitID            string            `json:"unidad_ID"`
	PurchaseOrder     string            `json:"pedido"`
	Item              int               `json:"partida"`
	Quantity          int               `json:"cantidad"`
	Cost              float64           `json:"costo"`
	Currency          string            `json:"moneda"`
	VAT               float64           `json:"iva"`
	Destination       string            `json:"lugar_Destino"`
	Remarks           string            `json:"observaciones"`
	Description       string            `json:"descripcion"`
	ShortDescription  string            `json:"descripcion_Corta"`
	Norm              string            `json:"norma"`
	SerialDescription string            `json:"descripNS"`
	NoticeType        string            `json:"tipo_Aviso"`
	SerialRanges      []SerialRange     `json:"numerosSerieOLote"`
	Penalties         string            `json:"penalizaciones"`
	CreatedBy         *NoticeAuthor     `json:"creado"`
	Company           string            `json:"empresa"`
	RegisteredAt      Timestamp         `json:"fechaRegistro"`
	Updates           []json.RawMessage `json:"actualizaciones"`
}

// SerialRange is a serial number or lot range covered by a notice
type SerialRange struct {
	Notice       int    `json:"aviso"`
	From         string `json:"no_Del"`
	To           string `json:"no_Al"`
	From2        string `json:"del2"`
	To2          string `json:"al2"`
	PatternStart string `json:"patIni"`
	PatternEnd   string `json:"patFin"`
	PatternMid   string `json:"patMed"`
	Description  string `json:"descSerie"`
	Count        int    `json:"cant"`
}

// NoticeAuthor records who created a notice
type NoticeAuthor struct {
	ID      string    `json:"id"`
	At      Timestamp `json:"fecha"`
	User    string    `json:"usuario"`
	Company string    `json:"empresa"`
	Event   string    `json:"evento"`
}

// ShortDescription is a dossier match returned by the short description search
type ShortDescription struct {
	ID               string `json:"id"`
	ShortDescription string `json:"descripcionCorta"`
	Norm             string `json:"norma"`
}
