package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"shapes/geometry"
	"shapes/scene"
)

type Op uint64

const (
	OpSync Op = iota
	OpDistance
	OpMove
	OpArea
	OpContains
	OpOverlaps
	OpRandomPoint
	OpAddShape
	OpRemoveShape
	OpRequestScene
	OpQueryPoint
)

var opNames = [...]string{
	OpSync:         "sync",
	OpDistance:     "distance",
	OpMove:         "move",
	OpArea:         "area",
	OpContains:     "contains",
	OpOverlaps:     "overlaps",
	OpRandomPoint:  "random_point",
	OpAddShape:     "add_shape",
	OpRemoveShape:  "remove_shape",
	OpRequestScene: "request_scene",
	OpQueryPoint:   "query_point",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// ClientEvent is a request from a client. Which of Points, Rects and Args are read depends on Op.
type ClientEvent struct {
	ID      string
	Seq     uint64
	Op      Op
	Points  []geometry.Point
	Rects   []geometry.Rectangle
	Args    []float64
	ShapeID string
}

func (e *ClientEvent) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, e.ID)
	b = appendVarint(b, 2, e.Seq)
	b = appendVarint(b, 3, uint64(e.Op))
	for _, p := range e.Points {
		b = appendMessage(b, 4, appendPoint(nil, p))
	}
	for _, r := range e.Rects {
		b = appendMessage(b, 5, appendRectangle(nil, r))
	}
	b = appendDoubles(b, 6, e.Args)
	b = appendString(b, 7, e.ShapeID)
	return b
}

func (e *ClientEvent) Unmarshal(b []byte) error {
	*e = ClientEvent{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			e.ID = v
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Seq = v
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Op = Op(v)
			return n, nil
		case num == 4 && typ == protowire.BytesType:
			return consumeMessage(b, func(msg []byte) error {
				var p geometry.Point
				if err := decodePoint(msg, &p); err != nil {
					return err
				}
				e.Points = append(e.Points, p)
				return nil
			})
		case num == 5 && typ == protowire.BytesType:
			return consumeMessage(b, func(msg []byte) error {
				var r geometry.Rectangle
				if err := decodeRectangle(msg, &r); err != nil {
					return err
				}
				e.Rects = append(e.Rects, r)
				return nil
			})
		case num == 6:
			return consumeDoubles(typ, b, &e.Args), nil
		case num == 7 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			e.ShapeID = v
			return n, nil
		}
		return 0, nil
	})
}

// ServerEvent answers a ClientEvent with the same Seq, or announces a scene change with Seq 0.
type ServerEvent struct {
	Seq     uint64
	Op      Op
	Number  float64
	Flag    bool
	Point   *geometry.Point
	Error   string
	Shapes  []scene.Shape
	ShapeID string
	Version int64
}

func (e *ServerEvent) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, e.Seq)
	b = appendVarint(b, 2, uint64(e.Op))
	b = appendDouble(b, 3, e.Number)
	b = appendVarint(b, 4, protowire.EncodeBool(e.Flag))
	if e.Point != nil {
		b = appendMessage(b, 5, appendPoint(nil, *e.Point))
	}
	b = appendString(b, 6, e.Error)
	for _, s := range e.Shapes {
		b = appendMessage(b, 7, appendShape(nil, s))
	}
	b = appendString(b, 8, e.ShapeID)
	b = appendVarint(b, 9, uint64(e.Version))
	return b
}

func (e *ServerEvent) Unmarshal(b []byte) error {
	*e = ServerEvent{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Seq = v
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Op = Op(v)
			return n, nil
		case num == 3 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &e.Number), nil
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Flag = protowire.DecodeBool(v)
			return n, nil
		case num == 5 && typ == protowire.BytesType:
			return consumeMessage(b, func(msg []byte) error {
				e.Point = &geometry.Point{}
				return decodePoint(msg, e.Point)
			})
		case num == 6 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			e.Error = v
			return n, nil
		case num == 7 && typ == protowire.BytesType:
			return consumeMessage(b, func(msg []byte) error {
				var s scene.Shape
				if err := decodeShape(msg, &s); err != nil {
					return err
				}
				e.Shapes = append(e.Shapes, s)
				return nil
			})
		case num == 8 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			e.ShapeID = v
			return n, nil
		case num == 9 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Version = int64(v)
			return n, nil
		}
		return 0, nil
	})
}
