package domain

// Device is one row from the device listing. Serial identifies the origin
// a session streams from; the attribute fields are best-effort and may be
// empty for devices that do not report them.
type Device struct {
	Serial      string
	State       string
	Product     string
	Model       string
	DeviceName  string
	TransportID string
}

// Online reports whether the device can accept a log session.
func (d Device) Online() bool {
	return d.State == "device"
}

// DisplayName returns the friendliest available identifier for UI lists.
func (d Device) DisplayName() string {
	if d.Model != "" {
		return d.Model + " (" + d.Serial + ")"
	}
	return d.Serial
}
