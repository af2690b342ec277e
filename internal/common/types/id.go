package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an int64 identifier that accepts both JSON numbers and numeric
// strings, since the admin UI sends ids as strings and the bot as numbers.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return id.parse(s)
	}
	return id.parse(string(data))
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(id.String())), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal id from a path or query parameter.
func ParseID(s string) (ID, error) {
	var id ID
	if err := id.parse(s); err != nil {
		return 0, err
	}
	return id, nil
}

func (id *ID) parse(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = ID(v)
	return nil
}
