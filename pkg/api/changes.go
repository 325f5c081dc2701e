package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

type valueKind uint8

const (
	kindNumber valueKind = iota
	kindFloor
	kindText
	kindFlag
	kindNested
)

// Value - одно значение диффа: приращение, нижняя граница ({"setMin":n}),
// строка, флаг или вложенный набор.
type Value struct {
	kind   valueKind
	num    float64
	text   string
	flag   bool
	nested Changes
}

// Num - числовое приращение.
func Num(v float64) Value {
	if v == 0 {
		v = 0 // без -0 в JSON
	}
	return Value{kind: kindNumber, num: v}
}

// IntVal - целое приращение.
func IntVal(v int) Value { return Value{kind: kindNumber, num: float64(v)} }

// Floor - поднять значение не ниже v.
func Floor(v int) Value { return Value{kind: kindFloor, num: float64(v)} }

func Text(s string) Value { return Value{kind: kindText, text: s} }

func Flag(b bool) Value { return Value{kind: kindFlag, flag: b} }

func Nested(c Changes) Value { return Value{kind: kindNested, nested: c} }

// Number возвращает числовое значение (для Floor - границу).
func (v Value) Number() float64 { return v.num }

// Int - Number, приведённое к int.
func (v Value) Int() int { return int(v.num) }

func (v Value) IsFloor() bool { return v.kind == kindFloor }

func (v Value) Text() string { return v.text }

func (v Value) Flag() bool { return v.flag }

func (v Value) Nested() Changes { return v.nested }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindFloor:
		return json.Marshal(map[string]float64{"setMin": v.num})
	case kindText:
		return json.Marshal(v.text)
	case kindFlag:
		return json.Marshal(v.flag)
	case kindNested:
		return json.Marshal(v.nested)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return nil, fmt.Errorf("invalid number %v", v.num)
	}
	return json.Marshal(v.num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Flag(b)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if m, ok := raw["setMin"]; ok && len(raw) == 1 {
			var n float64
			if err := json.Unmarshal(m, &n); err != nil {
				return err
			}
			*v = Floor(int(n))
			return nil
		}
		var c Changes
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*v = Nested(c)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Num(n)
	}
	return nil
}

// Changes - набор изменений одной сущности: ключ поля -> значение.
type Changes map[string]Value

// Set записывает значение и возвращает сам набор для цепочек.
func (c Changes) Set(key string, v Value) Changes {
	c[key] = v
	return c
}

// Add прибавляет целое к числовому полю.
func (c Changes) Add(key string, delta int) Changes {
	c[key] = Num(c[key].num + float64(delta))
	return c
}

// Int возвращает поле как целое (0, если поля нет).
func (c Changes) Int(key string) int {
	return c[key].Int()
}

// Has - поле присутствует.
func (c Changes) Has(key string) bool {
	_, ok := c[key]
	return ok
}
