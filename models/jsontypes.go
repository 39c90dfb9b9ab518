package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList 以 JSON 数组形式存储的字符串列表（如项目类别、商户经营类别）
type StringList []string

// Value 实现 driver.Valuer，序列化为 JSON
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner，空值和非法 JSON 均解析为空列表，不报错
func (l *StringList) Scan(value interface{}) error {
	*l = StringList{}
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法解析类型 %T 为 StringList", value)
	}
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		// 历史脏数据按空列表处理，由调用方决定是否修复
		return nil
	}
	*l = out
	return nil
}

// AmountMap 以 JSON 对象形式存储的"类别 -> 金额"映射（类别集合由管理端动态配置）
type AmountMap map[string]float64

// Value 实现 driver.Valuer
func (m AmountMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner，缺失或不可解析的结构一律按空映射处理
func (m *AmountMap) Scan(value interface{}) error {
	*m = AmountMap{}
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法解析类型 %T 为 AmountMap", value)
	}
	if len(data) == 0 {
		return nil
	}
	var out map[string]float64
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	*m = out
	return nil
}

// ActivityEntry 受助人操作日志条目
type ActivityEntry struct {
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp int64  `json:"timestamp"` // Unix 秒
}

// ActivityLog 追加式操作日志，以 JSON 数组形式存储
type ActivityLog []ActivityEntry

// Value 实现 driver.Valuer
func (l ActivityLog) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (l *ActivityLog) Scan(value interface{}) error {
	*l = ActivityLog{}
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法解析类型 %T 为 ActivityLog", value)
	}
	if len(data) == 0 {
		return nil
	}
	var out []ActivityEntry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}
