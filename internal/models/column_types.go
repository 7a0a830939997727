package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 类型定义，用于存储结构化结果字段
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, isText := value.(string); isText {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// JSONArray 数组类型定义，用于存储列表结果字段
type JSONArray []interface{}

// Value 实现 driver.Valuer 接口
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]interface{}{})
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = JSONArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, isText := value.(string); isText {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// FloatArray 浮点数组类型，用于存储司机过去一周工时
type FloatArray []float64

// Value 实现 driver.Valuer 接口
func (a FloatArray) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]float64{})
	}
	return json.Marshal(a)
}

// Scan 实现 sql.Scanner 接口
func (a *FloatArray) Scan(value interface{}) error {
	if value == nil {
		*a = FloatArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, isText := value.(string); isText {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, a)
}
