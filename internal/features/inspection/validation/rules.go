package validation

import "strings"

// AllowList is an immutable set of accepted values
type AllowList struct {
	values          []string
	caseInsensitive bool
}

// NewAllowList creates an allow-list. Matching ignores case when caseInsensitive is set.
func NewAllowList(caseInsensitive bool, values ...string) AllowList {
	copied := make([]string, len(values))
	copy(copied, values)
	return AllowList{values: copied, caseInsensitive: caseInsensitive}
}

// Contains reports whether value is accepted
func (a AllowList) Contains(value string) bool {
	for _, allowed := range a.values {
		if a.caseInsensitive && strings.EqualFold(allowed, value) {
			return true
		}
		if allowed == value {
			return true
		}
	}
	return false
}

// Values returns a copy of the accepted values
func (a AllowList) Values() []string {
	copied := make([]string, len(a.values))
	copy(copied, a.values)
	return copied
}

// String lists the accepted values
func (a AllowList) String() string {
	return strings.Join(a.values, ", ")
}

// ComparisonRange is the comparison requiring value2 >= value
const ComparisonRange = "RANGO"

// Rules holds every allow-list the validator checks against
type Rules struct {
	ContractUnits      AllowList
	ContractTypes      AllowList
	ManufacturingTypes AllowList
	TestTypes          AllowList
	ResultTypes        AllowList
	TestStatuses       AllowList
	DocumentTypes      AllowList
	Comparisons        AllowList
}

// DefaultRules returns the allow-lists the backend accepts
func DefaultRules() Rules {
	return Rules{
		ContractUnits:      NewAllowList(true, "par", "kg", "m", "ton", "jgo", "l", "tr", "lt", "pz", "Car"),
		ContractTypes:      NewAllowList(true, "ContratoCFE", "ContratoCFEConGarantia", "ContratoParticular"),
		ManufacturingTypes: NewAllowList(true, "LOTE", "SERIE"),
		TestTypes:          NewAllowList(true, "RUTINA", "ACEPTACION"),
		ResultTypes:        NewAllowList(true, "VALOR_REFERENCIA", "PASA/NO-PASA"),
		TestStatuses:       NewAllowList(true, "ACTIVA", "INACTIVA"),
		DocumentTypes:      NewAllowList(false, "CertificadoMaterial", "Prueba Rutina", "Otro"),
		Comparisons:        NewAllowList(true, "VALOR_MINIMO", "VALOR_MAXIMO", ComparisonRange, "NO_COMPARAR"),
	}
}

// Lists carries configured replacements for the default allow-lists.
// Empty fields keep the default list.
type Lists struct {
	ContractUnits      []string
	ContractTypes      []string
	ManufacturingTypes []string
	TestTypes          []string
	ResultTypes        []string
	TestStatuses       []string
	DocumentTypes      []string
	Comparisons        []string
}

// NewRules builds rules from configured lists. Case sensitivity follows the defaults.
func NewRules(lists Lists) Rules {
	rules := DefaultRules()
	override(&rules.ContractUnits, lists.ContractUnits)
	override(&rules.ContractTypes, lists.ContractTypes)
	override(&rules.ManufacturingTypes, lists.ManufacturingTypes)
	override(&rules.TestTypes, lists.TestTypes)
	override(&rules.ResultTypes, lists.ResultTypes)
	override(&rules.TestStatuses, lists.TestStatuses)
	override(&rules.DocumentTypes, lists.DocumentTypes)
	override(&rules.Comparisons, lists.Comparisons)
	return rules
}

func override(list *AllowList, values []string) {
	if len(values) == 0 {
		return
	}
	*list = NewAllowList(list.caseInsensitive, values...)
}
