package session

import (
	"context"
	"net/http"

	"github.com/coder/websocket"

	"github.com/pterodash/pterodash/internal/errors"
)

// Transport is one bidirectional message connection to the daemon. The
// production implementation wraps a websocket; tests script one in memory.
type Transport interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// DialFunc opens a Transport to a socket address. origin is sent as the
// Origin header; the daemon rejects the upgrade when it does not exactly
// match the panel URL it was configured with.
type DialFunc func(ctx context.Context, socketURL, origin string) (Transport, error)

// DialWebsocket is the production DialFunc.
func DialWebsocket(ctx context.Context, socketURL, origin string) (Transport, error) {
	conn, _, err := websocket.Dial(ctx, socketURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{origin}},
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSocket,
			"Cannot open websocket to "+socketURL,
			"Check the node is reachable and the panel URL matches its configured origin")
	}
	// Console backlog frames can be large.
	conn.SetReadLimit(1 << 20)
	return &wsTransport{conn: conn}, nil
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	return data, err
}

func (t *wsTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, websocket.MessageText, data)
}

func (t *wsTransport) Close() error {
	err := t.conn.Close(websocket.StatusNormalClosure, "")
	if err != nil {
		t.conn.CloseNow()
	}
	return nil
}
