package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilter_IsEmpty(t *testing.T) {
	assert.True(t, DefaultFilter().IsEmpty())
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero value", Filter{MaxLevel: LevelSilent}, true},
		{"min level raised", Filter{MinLevel: LevelWarning, MaxLevel: LevelSilent}, false},
		{"max level lowered", Filter{MaxLevel: LevelError}, false},
		{"allow tag", Filter{MaxLevel: LevelSilent, Tags: []string{"ActivityManager"}}, false},
		{"deny tag", Filter{MaxLevel: LevelSilent, ExcludeTags: []string{"chatty"}}, false},
		{"search", Filter{MaxLevel: LevelSilent, Search: "crash"}, false},
		{"device", Filter{MaxLevel: LevelSilent, Device: "emulator-5554"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.IsEmpty())
		})
	}
}

func TestDevice_DisplayName(t *testing.T) {
	d := Device{Serial: "emulator-5554", Model: "sdk_gphone64_x86_64"}
	assert.Equal(t, "sdk_gphone64_x86_64 (emulator-5554)", d.DisplayName())

	d = Device{Serial: "0123456789ABCDEF"}
	assert.Equal(t, "0123456789ABCDEF", d.DisplayName())
}

func TestDevice_Online(t *testing.T) {
	assert.True(t, Device{State: "device"}.Online())
	assert.False(t, Device{State: "unauthorized"}.Online())
	assert.False(t, Device{State: "offline"}.Online())
}
