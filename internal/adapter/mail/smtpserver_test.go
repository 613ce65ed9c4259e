package mail

import (
	"bufio"
	"io"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
)

// fakeSMTP is a minimal SMTP server that records received messages.
type fakeSMTP struct {
	ln         net.Listener
	rejectAuth bool
	stall      bool

	mu       sync.Mutex
	messages []receivedMessage
	authSeen bool
}

type receivedMessage struct {
	From string
	To   []string
	Data string
}

type fakeOption func(*fakeSMTP)

func withRejectAuth() fakeOption { return func(s *fakeSMTP) { s.rejectAuth = true } }

func withStall() fakeOption { return func(s *fakeSMTP) { s.stall = true } }

func startFakeSMTP(t *testing.T, opts ...fakeOption) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeSMTP{ln: ln}
	for _, opt := range opts {
		opt(s)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go s.serve()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) received() []receivedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]receivedMessage(nil), s.messages...)
}

func (s *fakeSMTP) sawAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authSeen
}

func (s *fakeSMTP) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeSMTP) handle(conn net.Conn) {
	defer conn.Close()
	tc := textproto.NewConn(conn)

	if s.stall {
		// Never greet; the client must give up on its own deadline.
		_, _ = io.Copy(io.Discard, bufio.NewReader(conn))
		return
	}

	_ = tc.PrintfLine("220 127.0.0.1 ESMTP fake")
	var cur receivedMessage
	for {
		line, err := tc.ReadLine()
		if err != nil {
			return
		}
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			_ = tc.PrintfLine("250-127.0.0.1")
			_ = tc.PrintfLine("250 AUTH PLAIN")
		case "AUTH":
			s.mu.Lock()
			s.authSeen = true
			s.mu.Unlock()
			if s.rejectAuth {
				_ = tc.PrintfLine("535 5.7.8 Authentication credentials invalid")
			} else {
				_ = tc.PrintfLine("235 2.7.0 Accepted")
			}
		case "*":
			_ = tc.PrintfLine("501 5.0.0 Auth aborted")
		case "MAIL":
			cur = receivedMessage{From: extractAddr(line)}
			_ = tc.PrintfLine("250 OK")
		case "RCPT":
			cur.To = append(cur.To, extractAddr(line))
			_ = tc.PrintfLine("250 OK")
		case "DATA":
			_ = tc.PrintfLine("354 Go ahead")
			data, err := io.ReadAll(tc.DotReader())
			if err != nil {
				return
			}
			cur.Data = string(data)
			s.mu.Lock()
			s.messages = append(s.messages, cur)
			s.mu.Unlock()
			_ = tc.PrintfLine("250 OK queued")
		case "RSET", "NOOP":
			_ = tc.PrintfLine("250 OK")
		case "QUIT":
			_ = tc.PrintfLine("221 Bye")
			return
		default:
			_ = tc.PrintfLine("502 Command not implemented")
		}
	}
}

func extractAddr(line string) string {
	start := strings.IndexByte(line, '<')
	end := strings.IndexByte(line, '>')
	if start < 0 || end < start {
		return ""
	}
	return line[start+1 : end]
}
