package service

// Broadcaster pushes mutation events to connected dashboard clients. The
// websocket hub implements it; tests use an in-memory recorder.
type Broadcaster interface {
	Publish(event string, payload map[string]interface{})
}

func publish(b Broadcaster, event string, payload map[string]interface{}) {
	if b != nil {
		b.Publish(event, payload)
	}
}
