package fulfilment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeMap(t *testing.T, result interface{}) map[string]interface{} {
	t.Helper()
	m, ok := result.(map[string]interface{})
	require.True(t, ok, "expected map result, got %T: %v", result, result)
	return m
}

func TestSupplierDatabaseKnownSku(t *testing.T) {
	tool := NewApprovedSupplierDatabase()

	result := tool.Invoke(context.Background(), map[string]interface{}{"sku": "TB-DINO-003"}, nil)
	m := invokeMap(t, result)

	assert.Equal(t, "TB-DINO-003", m["sku"])
	assert.Equal(t, "ToyBright Bath Dinosaur", m["product_name"])

	suppliers, ok := m["approved_suppliers"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, suppliers, 2)

	for _, s := range suppliers {
		// Internal-only field must never leak into the query output.
		assert.NotContains(t, s, "plasticiser_thermal_degradation_onset_celsius")
		assert.Contains(t, s, "ms4401_v3_2_results")
	}

	// Standard priority carries no rush advisory.
	assert.NotContains(t, m, "rush_advisory")
}

func TestSupplierDatabaseRushAdvisory(t *testing.T) {
	tool := NewApprovedSupplierDatabase()

	result := tool.Invoke(context.Background(), map[string]interface{}{
		"sku":            "TB-DINO-003",
		"order_priority": "rush", // case-insensitive
	}, nil)
	m := invokeMap(t, result)
	assert.Contains(t, m, "rush_advisory")
}

func TestSupplierDatabaseUnknownSku(t *testing.T) {
	tool := NewApprovedSupplierDatabase()

	// SKUs are matched exactly; lowercase does not normalize to a hit.
	result := tool.Invoke(context.Background(), map[string]interface{}{"sku": "tb-dino-003"}, nil)
	assert.Equal(t, "Error: SKU 'tb-dino-003' not found in Approved Vendor List.", result)
}

func TestProductionParametersDefaultAndNormalized(t *testing.T) {
	tool := NewProductionParameterDatabase()

	// No process_type falls back to injection moulding.
	m := invokeMap(t, tool.Invoke(context.Background(), map[string]interface{}{}, nil))
	assert.Equal(t, "Injection Moulding", m["process_type"])
	assert.Equal(t, "PVR-2023-017", m["validation_reference"])

	params, ok := m["approved_parameters"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, params, 5)

	// Spaces and case normalize to the table key.
	m = invokeMap(t, tool.Invoke(context.Background(), map[string]interface{}{
		"process_type": "Injection Moulding",
	}, nil))
	assert.Equal(t, "Injection Moulding", m["process_type"])
}

func TestProductionParametersUnknownProcess(t *testing.T) {
	tool := NewProductionParameterDatabase()

	result := tool.Invoke(context.Background(), map[string]interface{}{"process_type": "extrusion"}, nil)
	assert.Equal(t, "Error: Process type 'extrusion' not found in approved parameter database.", result)
}

func TestComplianceChecklist(t *testing.T) {
	tool := NewComplianceChecklistDatabase()

	m := invokeMap(t, tool.Invoke(context.Background(), map[string]interface{}{}, nil))
	assert.Equal(t, "CC-TOY-2024-R2", m["reference"])
	assert.Equal(t, 7, m["total_items"])

	items, ok := m["checklist_items"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, items, 7)
	assert.Equal(t, "CC-001", items[0]["id"])

	result := tool.Invoke(context.Background(), map[string]interface{}{"product_category": "garden furniture"}, nil)
	assert.Equal(t, "Error: Product category 'garden_furniture' not found in compliance checklist database.", result)
}

func TestFailureModeDatabase(t *testing.T) {
	tool := NewQualityFailureModeDatabase()

	m := invokeMap(t, tool.Invoke(context.Background(), map[string]interface{}{}, nil))
	assert.Equal(t, "FMEA-PVC-IM-2023-R4", m["fmea_reference"])
	assert.Equal(t, 6, m["total_failure_modes"])

	modes, ok := m["failure_modes"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, modes, 6)

	// Chemical migration stays out of the process FMEA; the scope note
	// redirects it to material certification.
	for _, mode := range modes {
		assert.NotContains(t, mode["failure_mode"], "Migration")
	}
	assert.Contains(t, m["scope_note"], "material supplier")

	result := tool.Invoke(context.Background(), map[string]interface{}{"process_type": "Blow Moulding"}, nil)
	assert.Equal(t, "Error: Process type 'blow_moulding' not found in failure mode database.", result)
}
