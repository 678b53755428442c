package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// ==================== Optional 局部更新字段 ====================

// Optional 区分 "未提供"、"显式 null" 和 "有值" 三种状态
// 仅当 Set 为 true 时才会写回实体
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some 构造一个已赋值的字段
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON 出现在请求体中即视为已提供
// 非指针类型不接受 null
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) && reflect.TypeOf((*T)(nil)).Elem().Kind() != reflect.Pointer {
		return errors.New("field may not be null")
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}

// MarshalJSON 配合 omitzero 使用，未提供的字段不会输出
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ApplyTo 已提供时覆盖目标
func (o Optional[T]) ApplyTo(dst *T) bool {
	if !o.Set {
		return false
	}
	*dst = o.Value
	return true
}

// optionalValue 供 validator 取值：未提供返回 nil 指针，omitempty 会跳过
func optionalValue[T any](field reflect.Value) interface{} {
	o, ok := field.Interface().(Optional[T])
	if !ok || !o.Set {
		return (*T)(nil)
	}
	return &o.Value
}
