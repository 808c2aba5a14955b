package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringAcceptsStringNumberAndNull(t *testing.T) {
	payload := `{
		"totalServicos": "15.000,00",
		"totalMaoObra": 100000.50,
		"totalMateriais": null,
		"bdiPercentual": 25
	}`

	var commercial CommercialProposal
	require.NoError(t, json.Unmarshal([]byte(payload), &commercial))

	assert.Equal(t, "15.000,00", commercial.ServicesTotal.String())
	assert.Equal(t, "100000.50", commercial.LaborTotal.String())
	assert.Equal(t, "", commercial.MaterialsTotal.String())
	assert.Equal(t, "25", commercial.BDIPercent.String())
}

func TestFlexStringRejectsNonScalar(t *testing.T) {
	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &f))
}
