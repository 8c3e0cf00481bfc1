package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies an order or a line item. Collections written by the older
// kiosk used millisecond timestamps as numeric ids; those decode to their
// decimal text.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("ledger id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
