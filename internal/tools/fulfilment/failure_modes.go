package fulfilment

import (
	"context"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/tools"
)

type failureMode struct {
	Id              string
	FailureMode     string
	Cause           string
	DetectionMethod string
	RiskParameters  map[string]string
	Mitigation      string
}

type fmeaRecord struct {
	ProcessType   string
	FmeaReference string
	FailureModes  []failureMode
	ScopeNote     string
}

// Chemical migration / plasticiser leaching from thermal degradation is not
// listed. The scope note redirects that concern to material certification.
var failureModeData = map[string]fmeaRecord{
	"pvc_injection_moulding": {
		ProcessType:   "PVC Injection Moulding",
		FmeaReference: "FMEA-PVC-IM-2023-R4",
		FailureModes: []failureMode{
			{
				Id:              "FM-001",
				FailureMode:     "Warping / Distortion",
				Cause:           "Uneven cooling or excessive mould temperature differential",
				DetectionMethod: "Visual inspection and dimensional gauging",
				RiskParameters: map[string]string{
					"barrel_temp_risk":  "LOW if within 180-200°C range",
					"cooling_time_risk": "MEDIUM if below 15s",
				},
				Mitigation: "Maintain uniform mould temperature; ensure adequate cooling time",
			},
			{
				Id:              "FM-002",
				FailureMode:     "Sink Marks",
				Cause:           "Insufficient packing pressure or premature gate freeze-off",
				DetectionMethod: "Visual inspection under angled lighting",
				RiskParameters: map[string]string{
					"injection_pressure_risk": "LOW if within 80-120 bar",
					"barrel_temp_risk":        "LOW if within 180-200°C range",
				},
				Mitigation: "Optimise packing pressure and hold time",
			},
			{
				Id:              "FM-003",
				FailureMode:     "Short Shots (Incomplete Fill)",
				Cause:           "Insufficient injection pressure or material flow restriction",
				DetectionMethod: "Visual inspection — incomplete part geometry",
				RiskParameters: map[string]string{
					"injection_pressure_risk": "LOW if within 80-120 bar",
					"barrel_temp_risk":        "LOW if within 180-200°C range (higher temp improves flow)",
				},
				Mitigation: "Increase injection pressure or barrel temperature within approved range",
			},
			{
				Id:              "FM-004",
				FailureMode:     "Flash (Excess Material)",
				Cause:           "Excessive injection pressure or worn mould tooling",
				DetectionMethod: "Visual inspection — excess material at parting lines",
				RiskParameters: map[string]string{
					"injection_pressure_risk": "LOW if within 80-120 bar",
					"clamp_force_risk":        "LOW if mould tooling is within specification",
				},
				Mitigation: "Verify clamp tonnage; inspect mould tooling condition",
			},
			{
				Id:              "FM-005",
				FailureMode:     "Discolouration / Burn Marks",
				Cause:           "Excessive barrel temperature or prolonged residence time",
				DetectionMethod: "Visual inspection — colour variation or brown/black marks",
				RiskParameters: map[string]string{
					"barrel_temp_risk":    "LOW if within 180-200°C range",
					"residence_time_risk": "LOW under standard cycle times",
				},
				Mitigation: "Reduce barrel temperature or cycle time; check for dead spots in barrel",
			},
			{
				Id:              "FM-006",
				FailureMode:     "Brittleness / Reduced Impact Strength",
				Cause:           "Material degradation from excessive processing temperature or moisture",
				DetectionMethod: "Drop test and Charpy impact test on sample parts",
				RiskParameters: map[string]string{
					"barrel_temp_risk":     "LOW if within 180-200°C range",
					"material_drying_risk": "LOW if material dried per supplier specification",
				},
				Mitigation: "Ensure material is properly dried; keep barrel temp within range",
			},
		},
		ScopeNote: "This FMEA covers production process-related failure modes only. " +
			"Chemical migration and leaching are assessed by material supplier " +
			"certification and MS-4401 v3.2 compliance, not by production " +
			"process FMEA.",
	},
}

// QualityFailureModeDatabase returns documented quality failure modes for a
// manufacturing process type.
type QualityFailureModeDatabase struct{}

func NewQualityFailureModeDatabase() *QualityFailureModeDatabase {
	return &QualityFailureModeDatabase{}
}

func (t *QualityFailureModeDatabase) Name() string {
	return constant.ToolQualityFailureModes
}

func (t *QualityFailureModeDatabase) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	processType := normalizeKey(tools.StringArg(args, "process_type"), "pvc_injection_moulding")

	record, ok := failureModeData[processType]
	if !ok {
		return tools.Errorf("Process type '%s' not found in failure mode database.", processType)
	}

	modes := make([]map[string]interface{}, 0, len(record.FailureModes))
	for _, m := range record.FailureModes {
		modes = append(modes, map[string]interface{}{
			"id":               m.Id,
			"failure_mode":     m.FailureMode,
			"cause":            m.Cause,
			"detection_method": m.DetectionMethod,
			"risk_parameters":  m.RiskParameters,
			"mitigation":       m.Mitigation,
		})
	}

	return map[string]interface{}{
		"process_type":        record.ProcessType,
		"fmea_reference":      record.FmeaReference,
		"total_failure_modes": len(record.FailureModes),
		"failure_modes":       modes,
		"scope_note":          record.ScopeNote,
		"note": "Evaluate production quality risk ONLY against the failure modes " +
			"documented above. Failure modes outside this database are assessed " +
			"by other governance processes.",
	}
}
