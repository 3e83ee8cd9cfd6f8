package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// UnitPolicy determines how a category's products are priced: per unit
// quantity, or scaled by the item's length x width area.
type UnitPolicy int

const (
	UnitPolicyPerUnit UnitPolicy = 0
	UnitPolicyPerArea UnitPolicy = 1
)

func (p UnitPolicy) String() string {
	if p == UnitPolicyPerArea {
		return "PerArea"
	}
	return "PerUnit"
}

func (p UnitPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *UnitPolicy) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = UnitPolicy(i)
		return nil
	}
	if str == "PerArea" {
		*p = UnitPolicyPerArea
	} else {
		*p = UnitPolicyPerUnit
	}
	return nil
}

func (p UnitPolicy) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *UnitPolicy) Scan(value interface{}) error {
	if value == nil {
		*p = UnitPolicyPerUnit
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = UnitPolicy(v)
	case int:
		*p = UnitPolicy(v)
	}
	return nil
}
