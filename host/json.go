package host

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON encodes a StepResult as the wire payload a session-oriented host
// (e.g. an HTTP wrapper around glim, out of scope per spec §1 but the
// shape such a wrapper would speak) would send back to its caller.
func (r StepResult) ToJSON() (string, error) {
	json := `{}`
	var err error
	json, err = sjson.Set(json, "status", string(r.Status))
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "line", r.Line)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "message", r.Message)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "output", r.Output)
	if err != nil {
		return "", err
	}
	return json, nil
}

// SupplyInputJSON decodes a `{"value": "..."}` payload and resumes the
// session with it, mirroring SupplyInput but for a wire caller that only
// has bytes, not a Go string, in hand.
func (s *Session) SupplyInputJSON(payload []byte) StepResult {
	value := gjson.GetBytes(payload, "value").String()
	return s.SupplyInput(value)
}
