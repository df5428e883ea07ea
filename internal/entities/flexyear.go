package entities

import (
	"encoding/json"
	"strconv"
)

// FlexYear — год выпуска техники. Таблица может хранить его и числом,
// и строкой ("2015", "н/д", пустая ячейка); значение должно уходить
// обратно в том же виде, в котором пришло.
type FlexYear struct {
	value   string
	numeric bool
}

func FlexYearFromString(s string) FlexYear {
	return FlexYear{value: s}
}

func FlexYearFromInt(n int64) FlexYear {
	return FlexYear{value: strconv.FormatInt(n, 10), numeric: true}
}

func (y FlexYear) String() string { return y.value }

func (y FlexYear) IsNumeric() bool { return y.numeric }

func (y FlexYear) MarshalJSON() ([]byte, error) {
	if y.numeric {
		return []byte(y.value), nil
	}
	return json.Marshal(y.value)
}

func (y *FlexYear) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = FlexYear{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = FlexYear{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = FlexYear{value: n.String(), numeric: true}
	return nil
}
