package match

// EventSink decouples the simulation from the transport layer: the
// NetAdapter implements this to turn discrete match events and snapshot
// patches into wire messages, without the sim loop importing the network
// package directly.
type EventSink interface {
	BroadcastPatch(Snapshot)
	BroadcastEvent(eventType string, payload any)
	SendToPlayer(sessionID, eventType string, payload any)
}

// noopSink discards everything; used when a Match is constructed without a
// transport attached yet (tests).
type noopSink struct{}

func (noopSink) BroadcastPatch(Snapshot)                             {}
func (noopSink) BroadcastEvent(eventType string, payload any)        {}
func (noopSink) SendToPlayer(sessionID, eventType string, payload any) {}
