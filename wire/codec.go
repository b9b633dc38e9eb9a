package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"shapes/geometry"
	"shapes/scene"
)

var ErrMalformed = errors.New("malformed message")

func malformed(n int) error {
	return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
}

// fieldFunc decodes one field from b and reports how many bytes it used. Returning 0 marks the
// field as unknown so it gets skipped; fields sent with an unexpected wire type are skipped too.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, field fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return malformed(n)
		}
		b = b[n:]

		n, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return malformed(n)
		}
		b = b[n:]
	}
	return nil
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	bits := math.Float64bits(v)
	if bits == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, bits)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func consumeDouble(b []byte, dst *float64) int {
	v, n := protowire.ConsumeFixed64(b)
	if n >= 0 {
		*dst = math.Float64frombits(v)
	}
	return n
}

func consumeMessage(b []byte, decode func([]byte) error) (int, error) {
	msg, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, decode(msg)
}

func appendPoint(b []byte, p geometry.Point) []byte {
	b = appendDouble(b, 1, p.X)
	return appendDouble(b, 2, p.Y)
}

func decodePoint(b []byte, p *geometry.Point) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.Fixed64Type {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeDouble(b, &p.X), nil
		case 2:
			return consumeDouble(b, &p.Y), nil
		}
		return 0, nil
	})
}

func appendRectangle(b []byte, r geometry.Rectangle) []byte {
	b = appendDouble(b, 1, r.Width)
	b = appendDouble(b, 2, r.Height)
	return appendMessage(b, 3, appendPoint(nil, r.Position))
}

func decodeRectangle(b []byte, r *geometry.Rectangle) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &r.Width), nil
		case num == 2 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &r.Height), nil
		case num == 3 && typ == protowire.BytesType:
			return consumeMessage(b, func(msg []byte) error {
				return decodePoint(msg, &r.Position)
			})
		}
		return 0, nil
	})
}

func appendShape(b []byte, s scene.Shape) []byte {
	b = appendString(b, 1, s.ID)
	return appendMessage(b, 2, appendRectangle(nil, s.Rect))
}

func decodeShape(b []byte, s *scene.Shape) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			v, n := protowire.ConsumeString(b)
			s.ID = v
			return n, nil
		case 2:
			return consumeMessage(b, func(msg []byte) error {
				return decodeRectangle(msg, &s.Rect)
			})
		}
		return 0, nil
	})
}

// consumeDoubles accepts both packed and one-per-tag encodings.
func consumeDoubles(typ protowire.Type, b []byte, dst *[]float64) int {
	switch typ {
	case protowire.Fixed64Type:
		var v float64
		n := consumeDouble(b, &v)
		if n >= 0 {
			*dst = append(*dst, v)
		}
		return n
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n
		}
		for len(packed) > 0 {
			var v float64
			m := consumeDouble(packed, &v)
			if m < 0 {
				return m
			}
			*dst = append(*dst, v)
			packed = packed[m:]
		}
		return n
	}
	return 0
}

func appendDoubles(b []byte, num protowire.Number, vs []float64) []byte {
	if len(vs) == 0 {
		return b
	}
	packed := make([]byte, 0, 8*len(vs))
	for _, v := range vs {
		packed = protowire.AppendFixed64(packed, math.Float64bits(v))
	}
	return appendMessage(b, num, packed)
}
