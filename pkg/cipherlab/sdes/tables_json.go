package sdes

import "encoding/json"

// tablesJSON is the wire form of Tables. S-boxes travel as grids of
// 2-character bit strings.
type tablesJSON struct {
	P10 []int      `json:"P10,omitempty"`
	P8  []int      `json:"P8,omitempty"`
	IP  []int      `json:"IP,omitempty"`
	EP  []int      `json:"EP,omitempty"`
	P4  []int      `json:"P4,omitempty"`
	S0  [][]string `json:"S0,omitempty"`
	S1  [][]string `json:"S1,omitempty"`
}

// MarshalJSON encodes t with the table names as keys.
func (t *Tables) MarshalJSON() ([]byte, error) {
	return json.Marshal(tablesJSON{
		P10: t.P10,
		P8:  t.P8,
		IP:  t.IP,
		EP:  t.EP,
		P4:  t.P4,
		S0:  t.S0.Strings(),
		S1:  t.S1.Strings(),
	})
}

// UnmarshalJSON overwrites only the tables present in data. Decoding into
// DefaultTables() therefore fills missing tables with the textbook values.
// Fields other than the table names are ignored, so a whole API request body
// can be decoded directly.
func (t *Tables) UnmarshalJSON(data []byte) error {
	var raw tablesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.P10 != nil {
		t.P10 = raw.P10
	}
	if raw.P8 != nil {
		t.P8 = raw.P8
	}
	if raw.IP != nil {
		t.IP = raw.IP
	}
	if raw.EP != nil {
		t.EP = raw.EP
	}
	if raw.P4 != nil {
		t.P4 = raw.P4
	}
	if raw.S0 != nil {
		box, err := ParseSBox("S0", raw.S0)
		if err != nil {
			return err
		}
		t.S0 = box
	}
	if raw.S1 != nil {
		box, err := ParseSBox("S1", raw.S1)
		if err != nil {
			return err
		}
		t.S1 = box
	}
	return nil
}
