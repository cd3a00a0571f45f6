package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

const wkbPoint = 1

// ewkbSRIDFlag marks the presence of an SRID in the geometry header.
const ewkbSRIDFlag = 0x20000000

// Point is a WGS84 coordinate pair stored as a PostGIS geography
// point. It implements driver.Valuer (writes EWKT) and sql.Scanner
// (reads the hex EWKB that Postgres returns).
type Point struct {
	Latitude  float64
	Longitude float64
}

func (Point) GormDataType() string {
	return "geography(Point,4326)"
}

func (p Point) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%v %v)", p.Longitude, p.Latitude), nil
}

func (p *Point) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Point", value)
	}

	data, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("invalid EWKB hex: %v", err)
	}
	if len(data) < 5 {
		return fmt.Errorf("EWKB too short: %d bytes", len(data))
	}

	var order binary.ByteOrder = binary.LittleEndian
	if data[0] == 0 {
		order = binary.BigEndian
	}

	geomType := order.Uint32(data[1:5])
	offset := 5
	if geomType&ewkbSRIDFlag != 0 {
		geomType &^= ewkbSRIDFlag
		offset += 4 // skip the SRID, geography is always 4326 here
	}
	if geomType != wkbPoint {
		return fmt.Errorf("unexpected geometry type %d, want point", geomType)
	}
	if len(data) < offset+16 {
		return fmt.Errorf("EWKB point truncated: %d bytes", len(data))
	}

	p.Longitude = math.Float64frombits(order.Uint64(data[offset : offset+8]))
	p.Latitude = math.Float64frombits(order.Uint64(data[offset+8 : offset+16]))
	return nil
}
