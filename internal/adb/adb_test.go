package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevices(t *testing.T) {
	output := `List of devices attached
emulator-5554          device product:sdk_gphone64_x86_64 model:sdk_gphone64_x86_64 device:emu64x transport_id:1
0123456789ABCDEF       unauthorized usb:1-1 transport_id:2

`
	devices := ParseDevices(output)
	require.Len(t, devices, 2)

	assert.Equal(t, "emulator-5554", devices[0].Serial)
	assert.Equal(t, "device", devices[0].State)
	assert.Equal(t, "sdk_gphone64_x86_64", devices[0].Model)
	assert.Equal(t, "emu64x", devices[0].DeviceName)
	assert.Equal(t, "1", devices[0].TransportID)
	assert.True(t, devices[0].Online())

	assert.Equal(t, "0123456789ABCDEF", devices[1].Serial)
	assert.Equal(t, "unauthorized", devices[1].State)
	assert.Empty(t, devices[1].Model)
	assert.False(t, devices[1].Online())
}

func TestParseDevices_SkipsMalformedRows(t *testing.T) {
	output := `List of devices attached
justserial
emulator-5554          device model:Pixel_6
* daemon started successfully *
`
	devices := ParseDevices(output)
	require.Len(t, devices, 1)
	assert.Equal(t, "emulator-5554", devices[0].Serial)
	assert.Equal(t, "Pixel_6", devices[0].Model)
}

func TestParseDevices_MissingOptionalAttributes(t *testing.T) {
	devices := ParseDevices("serial123 device oddtoken\n")
	require.Len(t, devices, 1)
	assert.Equal(t, "serial123", devices[0].Serial)
	assert.Empty(t, devices[0].Model)
}

func TestParseDevices_Empty(t *testing.T) {
	assert.Empty(t, ParseDevices(""))
	assert.Empty(t, ParseDevices("List of devices attached\n\n"))
}

func TestLogcatArgs(t *testing.T) {
	args := LogcatArgs("emulator-5554")
	assert.Equal(t, []string{"-s", "emulator-5554", "logcat", "-v", "threadtime"}, args)

	args = LogcatArgs("emulator-5554", "ActivityManager:W", "*:S")
	assert.Equal(t, []string{"-s", "emulator-5554", "logcat", "-v", "threadtime", "ActivityManager:W", "*:S"}, args)
}

func TestClearArgs(t *testing.T) {
	assert.Equal(t, []string{"-s", "abc", "logcat", "-c"}, ClearArgs("abc"))
}
