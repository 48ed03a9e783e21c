package watchdog

import (
	"fmt"
	"net"
)

// UDPSender sends one fire-and-forget datagram to 127.0.0.1:port. Send
// failures are never surfaced beyond a debug log line: heartbeats are
// best-effort by design (spec'd non-goal: reliable delivery).
type UDPSender interface {
	Send(payload []byte, port int) error
}

type loopbackUDPSender struct{}

func newLoopbackUDPSender() UDPSender { return loopbackUDPSender{} }

func (loopbackUDPSender) Send(payload []byte, port int) error {
	conn, err := net.Dial("udp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write(payload)
	return err
}
