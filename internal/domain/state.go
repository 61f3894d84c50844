package domain

// ConnState is the lifecycle state of a device log session. It is owned
// exclusively by the stream source.
type ConnState int

const (
	ConnIdle ConnState = iota
	ConnStarting
	ConnStreaming
	ConnDisconnected
	ConnStopped
)

var connStateNames = [...]string{
	"idle", "starting", "streaming", "disconnected", "stopped",
}

// String returns the lowercase name of the state.
func (s ConnState) String() string {
	if s < ConnIdle || s > ConnStopped {
		return "unknown"
	}
	return connStateNames[s]
}
