package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// NullInt64 entero opcional. La API lo serializa a veces como número/null y a veces
// como {"Int64": n, "Valid": bool} (sql.NullInt64 sin marshaller propio); se aceptan ambos.
type NullInt64 struct {
	Int64 int64
	Valid bool
}

// NewNullInt64 valor presente.
func NewNullInt64(n int64) NullInt64 { return NullInt64{Int64: n, Valid: true} }

func (n NullInt64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Int64)
}

func (n *NullInt64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = NullInt64{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var raw struct {
			Int64 int64
			Valid bool
		}
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("NullInt64: %w", err)
		}
		*n = NullInt64{Int64: raw.Int64, Valid: raw.Valid}
		return nil
	}
	if err := json.Unmarshal(b, &n.Int64); err != nil {
		return fmt.Errorf("NullInt64: %w", err)
	}
	n.Valid = true
	return nil
}

// NullDecimal importe opcional; acepta número, string, null o {"Float64": x, "Valid": bool}.
type NullDecimal struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewNullDecimal valor presente.
func NewNullDecimal(d decimal.Decimal) NullDecimal { return NullDecimal{Decimal: d, Valid: true} }

func (n NullDecimal) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Decimal.MarshalJSON()
}

func (n *NullDecimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = NullDecimal{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var raw struct {
			Float64 decimal.Decimal
			Valid   bool
		}
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("NullDecimal: %w", err)
		}
		*n = NullDecimal{Decimal: raw.Float64, Valid: raw.Valid}
		return nil
	}
	if err := n.Decimal.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("NullDecimal: %w", err)
	}
	n.Valid = true
	return nil
}
