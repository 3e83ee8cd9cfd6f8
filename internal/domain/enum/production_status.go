package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductionStatus is the stage of a receivable's order on the production
// floor. Legacy marks records migrated from before the system existed; it
// is terminal and never transitions.
type ProductionStatus int

const (
	ProductionStatusQueued    ProductionStatus = 0
	ProductionStatusPrinting  ProductionStatus = 1
	ProductionStatusReady     ProductionStatus = 2
	ProductionStatusDelivered ProductionStatus = 3
	ProductionStatusLegacy    ProductionStatus = 4
)

var productionStatusNames = [...]string{"Queued", "Printing", "Ready", "Delivered", "Legacy"}

func (s ProductionStatus) Valid() bool {
	return s >= ProductionStatusQueued && s <= ProductionStatusLegacy
}

// Live reports whether the status is one of the four kanban stages,
// excluding the terminal Legacy marker.
func (s ProductionStatus) Live() bool {
	return s >= ProductionStatusQueued && s <= ProductionStatusDelivered
}

func (s ProductionStatus) String() string {
	if !s.Valid() {
		return "Queued"
	}
	return productionStatusNames[s]
}

func (s ProductionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProductionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProductionStatus(i)
		return nil
	}
	for i, name := range productionStatusNames {
		if name == str {
			*s = ProductionStatus(i)
			return nil
		}
	}
	*s = ProductionStatusQueued
	return nil
}

func (s ProductionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProductionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProductionStatusQueued
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProductionStatus(v)
	case int:
		*s = ProductionStatus(v)
	}
	return nil
}
