package meta

import (
	"fmt"
	"strings"
)

// DefaultVarCharLength is used for string columns declared without a length.
const DefaultVarCharLength = 500

// DataType is the storage type of a mapped column.
type DataType int

const (
	VarChar DataType = iota
	Text
	Integer
	Boolean
	DateTime
	Decimal
)

var dataTypeNames = [...]string{
	VarChar:  "VarChar",
	Text:     "Text",
	Integer:  "Integer",
	Boolean:  "Boolean",
	DateTime: "DateTime",
	Decimal:  "Decimal",
}

func (d DataType) String() string {
	if d < 0 || int(d) >= len(dataTypeNames) {
		return fmt.Sprintf("DataType(%d)", int(d))
	}
	return dataTypeNames[d]
}

func (d DataType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DataType) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for i, name := range dataTypeNames {
		if strings.EqualFold(name, s) {
			*d = DataType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown data type: %s", s)
}

// TableColumn describes one mapped column. Values are copied out of the
// cache, so a caller holding one cannot change what others see.
type TableColumn struct {
	AttributeName string   `json:"attributeName"`
	DataType      DataType `json:"dataType"`
	DataLength    int      `json:"dataLength"` // VarChar only
	IsExtend      bool     `json:"isExtend"`
}
