package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts both JSON strings and numbers. Generated plans are not consistent
// about it: "sets": 3 and "reps": "8-12" can show up in the same exercise.
type FlexString string

func (fs *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*fs = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*fs = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: unsupported value %s", data)
	}
	*fs = FlexString(n.String())
	return nil
}

func (fs FlexString) String() string {
	return string(fs)
}
