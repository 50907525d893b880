package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderType identifies which ordering surface a cart came from.
type OrderType string

const (
	OrderTypeWaiter  OrderType = "waiter"
	OrderTypeQR      OrderType = "qr"
	OrderTypeTakeout OrderType = "takeout"
)

// ParseOrderType validates a wire value against the known surfaces.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeWaiter, OrderTypeQR, OrderTypeTakeout:
		return OrderType(s), nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseOrderType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeWaiter
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = OrderType(v)
	case []byte:
		*t = OrderType(v)
	}
	return nil
}
