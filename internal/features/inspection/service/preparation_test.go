package service

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sid-client/internal/common"
	"sid-client/internal/features/backend/domain/mocks"
	"sid-client/internal/features/inspection/domain"
	"sid-client/internal/features/inspection/validation"
)

const contractsPage = `{
	"total": 2, "paginaActual": 1, "tamañoPagina": 1000,
	"contratos": [
		{"$Tipo":"ContratoCFE","id":"c1","noContrato":"700-1","tipoContrato":"ContratoCFE","estatus":"ABIERTO",
		 "detalleContrato":[{"partidaContrato":"1","cantidad":3,"unidad":"pz"}]},
		{"$Tipo":"ContratoParticular","id":"c2","noContrato":"P-9","tipoContrato":"ContratoParticular","estatus":"ABIERTO"}
	]
}`

func newPreparationService(t *testing.T) (*PreparationService, *mocks.MockAPICaller) {
	t.Helper()
	caller := new(mocks.MockAPICaller)
	s, err := NewPreparationService(caller, validation.NewValidator(validation.DefaultRules()))
	require.NoError(t, err)
	return s, caller
}

func contractPageQuery() url.Values {
	return url.Values{"pageNumber": {"1"}, "pageSize": {"1000"}}
}

func TestChangeContractStatus(t *testing.T) {
	t.Run("updates the matching contract", func(t *testing.T) {
		s, caller := newPreparationService(t)
		caller.On("CallAPIAndParseResponse", mock.Anything, http.MethodGet, PathContracts, contractPageQuery(), nil, nil).
			Return([]byte(contractsPage), nil)
		caller.On("CallAPIAndParseResponse", mock.Anything, http.MethodPut, PathContracts, url.Values(nil),
			mock.MatchedBy(func(c domain.Contract) bool {
				return c.ID == "c1" && c.Status == "CERRADO" && c.Kind == "ContratoCFE"
			}), nil).
			Return([]byte{}, nil)

		contract, err := s.ChangeContractStatus(context.Background(), "c1", "CERRADO")
		require.NoError(t, err)
		assert.Equal(t, "CERRADO", contract.Status)
		caller.AssertExpectations(t)
	})

	t.Run("unknown contract", func(t *testing.T) {
		s, caller := newPreparationService(t)
		caller.On("CallAPIAndParseResponse", mock.Anything, http.MethodGet, PathContracts, contractPageQuery(), nil, nil).
			Return([]byte(contractsPage), nil)

		_, err := s.ChangeContractStatus(context.Background(), "c9", "CERRADO")
		require.Error(t, err)
		assert.True(t, common.IsNotFound(err))
		assert.Zero(t, putCalls(caller))
	})

	t.Run("blank arguments", func(t *testing.T) {
		s, caller := newPreparationService(t)

		_, err := s.ChangeContractStatus(context.Background(), " ", "CERRADO")
		assert.True(t, common.IsValidationError(err))

		_, err = s.ChangeContractStatus(context.Background(), "c1", "")
		assert.True(t, common.IsValidationError(err))

		caller.AssertNumberOfCalls(t, "CallAPIAndParseResponse", 0)
	})
}

func TestCheckOrderComplete(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{
			name: "complete order",
			body: `[{"id":"o1","claveOrdenFabricacion":"OF-1","loteFabricacion":"L-1","idProducto":"p1",
				"detalleFabricacion":[{"tipoContrato":"ContratoCFE","cantidadAFabricar":2}]}]`,
			expected: true,
		},
		{
			name:     "missing batch",
			body:     `[{"id":"o1","claveOrdenFabricacion":"OF-1","idProducto":"p1","detalleFabricacion":[{}]}]`,
			expected: false,
		},
		{
			name:     "no lines",
			body:     `[{"id":"o1","claveOrdenFabricacion":"OF-1","loteFabricacion":"L-1","idProducto":"p1"}]`,
			expected: false,
		},
		{
			name:     "no orders",
			body:     `[]`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, caller := newPreparationService(t)
			caller.On("CallAPIAndParseResponse", mock.Anything, http.MethodGet, PathOrders+"/o1", url.Values(nil), nil, nil).
				Return([]byte(tt.body), nil)

			complete, err := s.CheckOrderComplete(context.Background(), "o1")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, complete)
		})
	}
}

func TestSamples(t *testing.T) {
	s, caller := newPreparationService(t)
	caller.On("CallAPIAndParseResponse", mock.Anything, http.MethodPut,
		"F2_PreparacionFabricacion/AgregaMuestraExpediente/EXP-1", url.Values(nil), "S-01", nil).
		Return([]byte{}, nil)
	caller.On("CallAPIAndParseResponse", mock.Anything, http.MethodPut,
		"F2_PreparacionFabricacion/QuitarMuestraExpediente/EXP-1/S-01", url.Values(nil), nil, nil).
		Return([]byte{}, nil)

	require.NoError(t, s.AddSample(context.Background(), "EXP-1", "S-01"))
	require.NoError(t, s.RemoveSample(context.Background(), "EXP-1", "S-01"))
	caller.AssertExpectations(t)

	err := s.AddSample(context.Background(), "EXP-1", "")
	vErr, ok := common.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "muestra", vErr.Field)
	caller.AssertNumberOfCalls(t, "CallAPIAndParseResponse", 2)
}

func TestDossierCreateRequiresKey(t *testing.T) {
	s, caller := newPreparationService(t)

	_, err := s.DossierWrites.Create(context.Background(), domain.DossierRequest{OrderID: "o1", SampleCount: 3})
	vErr, ok := common.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "claveExpediente", vErr.Field)
	caller.AssertNumberOfCalls(t, "CallAPIAndParseResponse", 0)
}
