package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringArray_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want StringArray
	}{
		{"nil", nil, nil},
		{"空数组", "{}", StringArray{}},
		{"字节切片", []byte("{Monday,Wednesday}"), StringArray{"Monday", "Wednesday"}},
		{"带引号", `{"Monday","Friday"}`, StringArray{"Monday", "Friday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringArray
			if err := got.Scan(tt.src); err != nil {
				t.Fatalf("Scan 失败: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("结果不符 (-期望 +实际):\n%s", diff)
			}
		})
	}
}

func TestStringArray_ScanUnsupported(t *testing.T) {
	var a StringArray
	if err := a.Scan(42); err == nil {
		t.Error("期望不支持的类型返回错误")
	}
}

func TestStringArray_Value(t *testing.T) {
	v, err := StringArray{"Monday", "Thursday"}.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}
	if v != "{Monday,Thursday}" {
		t.Errorf("期望 {Monday,Thursday}, 实际 %v", v)
	}

	if v, _ := StringArray(nil).Value(); v != nil {
		t.Errorf("nil 数组期望 nil, 实际 %v", v)
	}

	if _, err := (StringArray{"a,b"}).Value(); err == nil {
		t.Error("含逗号的元素应返回错误")
	}
}
