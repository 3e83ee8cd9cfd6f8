package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Tier represents a customer's pricing level. It selects which price
// column of a product applies when an order is quoted.
type Tier int

const (
	TierEndCustomer Tier = 0
	TierRetail      Tier = 1
	TierWholesale   Tier = 2
	TierReseller    Tier = 3
	TierCorporate   Tier = 4
)

var tierNames = [...]string{"EndCustomer", "Retail", "Wholesale", "Reseller", "Corporate"}

func (t Tier) Valid() bool {
	return t >= TierEndCustomer && t <= TierCorporate
}

func (t Tier) String() string {
	if !t.Valid() {
		return "EndCustomer"
	}
	return tierNames[t]
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = Tier(i)
		return nil
	}
	for i, name := range tierNames {
		if name == str {
			*t = Tier(i)
			return nil
		}
	}
	*t = TierEndCustomer
	return nil
}

func (t Tier) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *Tier) Scan(value interface{}) error {
	if value == nil {
		*t = TierEndCustomer
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = Tier(v)
	case int:
		*t = Tier(v)
	}
	return nil
}
