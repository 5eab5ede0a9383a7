// Package ws is the attach point for the renderer/UI client. It is not a
// multiplayer surface: every session drives the same local world.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/world"
)

type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	out chan []byte
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // local client
		},
		clients: map[*client]struct{}{},
	}
}

// OnTick implements world.TickSink: one STATE frame per tick plus an EVENT
// frame when the tick emitted anything. Slow clients drop frames.
func (s *Server) OnTick(state protocol.StateMsg, events []protocol.Event) {
	sb, err := json.Marshal(state)
	if err != nil {
		return
	}
	var eb []byte
	if len(events) > 0 {
		eb, _ = json.Marshal(protocol.EventMsg{
			Type:   protocol.TypeEvent,
			Tick:   state.Tick,
			Events: events,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.send(sb)
		if eb != nil {
			c.send(eb)
		}
	}
}

func (c *client) send(b []byte) {
	select {
	case c.out <- b:
	default:
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if !s.handshake(conn) {
			return
		}

		c := &client{out: make(chan []byte, 64)}
		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeAct {
				continue
			}
			var act protocol.ActMsg
			if err := json.Unmarshal(msg, &act); err != nil {
				continue
			}
			if act.ProtocolVersion != protocol.Version {
				continue
			}
			s.world.Inbox() <- act
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) bool {
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil || hello.Type != protocol.TypeHello {
		s.reject(conn, protocol.ErrProtoBadRequest, "expected HELLO")
		return false
	}
	if hello.ProtocolVersion != protocol.Version {
		s.reject(conn, protocol.ErrProtoVersion, "unsupported protocol version")
		return false
	}

	playerID := ""
	if p := s.world.Player(); p != nil {
		playerID = p.ID
	}
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		WorldID:         s.world.ID(),
		Seed:            s.world.Seed(),
		TickRateHz:      s.world.Tuning().TickRateHz,
		PlayerID:        playerID,
		LootDigest:      s.world.LootDigest(),
	}
	b, _ := json.Marshal(welcome)
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return false
	}
	return true
}

func (s *Server) reject(conn *websocket.Conn, code, msg string) {
	b, _ := json.Marshal(protocol.ErrorMsg{Type: protocol.TypeError, Code: code, Message: msg})
	_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}
