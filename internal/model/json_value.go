// FILE: internal/model/json_value.go
// JSON column that survives sqlite type affinity
package model

import (
	"database/sql/driver"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONValue stores raw JSON as jsonb on postgres and as text elsewhere.
// A JSON-affinity column on sqlite turns a stored `500` into an integer,
// so Scan also accepts driver numerics and booleans.
type JSONValue datatypes.JSON

func (j JSONValue) Value() (driver.Value, error) {
	return datatypes.JSON(j).Value()
}

func (j *JSONValue) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*j = JSONValue(strconv.FormatInt(v, 10))
		return nil
	case float64:
		*j = JSONValue(strconv.FormatFloat(v, 'f', -1, 64))
		return nil
	case bool:
		*j = JSONValue(strconv.FormatBool(v))
		return nil
	}
	return (*datatypes.JSON)(j).Scan(value)
}

func (j JSONValue) MarshalJSON() ([]byte, error) {
	return datatypes.JSON(j).MarshalJSON()
}

func (j *JSONValue) UnmarshalJSON(b []byte) error {
	return (*datatypes.JSON)(j).UnmarshalJSON(b)
}

func (JSONValue) GormDataType() string {
	return "json"
}

func (JSONValue) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	}
	return "TEXT"
}
