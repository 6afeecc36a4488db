package driver

import (
	"encoding/json"
	"fmt"
	"strings"

	"sable/internal/diag"
	"sable/internal/observ"
	"sable/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic attaches the timing report to the bag as an
// info diagnostic, with the machine-readable payload in a note.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		fmt.Fprintf(&msg, " in %s", payload.Path)
	}

	appendAlways(bag, diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg.String(),
		Primary:  source.Span{},
		Notes:    []diag.Note{{Span: source.Span{}, Msg: string(data)}},
	})
}

// appendAlways adds the diagnostic even when the bag sits at capacity.
// Timing reports must not be the thing the limit drops.
func appendAlways(bag *diag.Bag, d diag.Diagnostic) {
	if bag.Add(d) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(d)
	bag.Merge(overflow)
}
