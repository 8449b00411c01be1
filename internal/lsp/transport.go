package lsp

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	websocketjsonrpc2 "github.com/sourcegraph/jsonrpc2/websocket"
)

// ListenWebSocket serves the editor connection over a websocket
// endpoint instead of stdio. One editor connection is served at a
// time; the bridge owns a single analysis service.
func (s *Server) ListenWebSocket(addr string) error {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}

		stream := websocketjsonrpc2.NewObjectStream(wsConn)
		conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(s.handle))
		s.conn = conn
		<-conn.DisconnectNotify()
	})

	log.Printf("listening for editor connection on ws://%s", addr)
	return http.ListenAndServe(addr, mux)
}
