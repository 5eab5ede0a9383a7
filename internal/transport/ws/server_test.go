package ws

import (
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/catalogs"
	"voxelquest.ai/internal/sim/tuning"
	"voxelquest.ai/internal/sim/world"
)

func newTestServer(t *testing.T) (*Server, *world.World, *httptest.Server) {
	t.Helper()
	w, err := world.New(world.Config{ID: "w1", Seed: 7}, tuning.Default(), catalogs.Default())
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	if _, err := w.SpawnPlayer(protocol.PlayerDescriptor{
		Pos:   [3]float64{0, 0, 0},
		Stats: protocol.StatBlock{MaxHP: 100, Speed: 5, Power: 10, Defense: 5},
	}); err != nil {
		t.Fatalf("spawn player: %v", err)
	}

	s := NewServer(w, log.New(os.Stderr, "[ws-test] ", 0))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, w, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandshakeWelcome(t *testing.T) {
	_, w, ts := newTestServer(t)
	conn := dial(t, ts)

	hello := protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, ClientName: "renderer"}
	if err := conn.WriteJSON(hello); err != nil {
		t.Fatalf("write hello: %v", err)
	}

	var welcome protocol.WelcomeMsg
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if welcome.Type != protocol.TypeWelcome || welcome.WorldID != "w1" || welcome.Seed != 7 {
		t.Fatalf("welcome = %+v", welcome)
	}
	if welcome.PlayerID != w.Player().ID {
		t.Fatalf("welcome player id %q, want %q", welcome.PlayerID, w.Player().ID)
	}
	if welcome.LootDigest != w.LootDigest() {
		t.Fatalf("welcome loot digest mismatch")
	}
}

func TestHandshakeRejectsVersionMismatch(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts)

	hello := protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: "0.9"}
	if err := conn.WriteJSON(hello); err != nil {
		t.Fatalf("write hello: %v", err)
	}

	var errMsg protocol.ErrorMsg
	if err := conn.ReadJSON(&errMsg); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if errMsg.Type != protocol.TypeError || errMsg.Code != protocol.ErrProtoVersion {
		t.Fatalf("reject = %+v", errMsg)
	}
}

func TestHandshakeRejectsNonHello(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(map[string]string{"type": "ACT"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var errMsg protocol.ErrorMsg
	if err := conn.ReadJSON(&errMsg); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if errMsg.Code != protocol.ErrProtoBadRequest {
		t.Fatalf("reject = %+v", errMsg)
	}
}

func TestActReachesWorldAndStateFansOut(t *testing.T) {
	s, w, ts := newTestServer(t)
	w.AddSink(s)
	conn := dial(t, ts)

	if err := conn.WriteJSON(protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version}); err != nil {
		t.Fatalf("hello: %v", err)
	}
	var welcome protocol.WelcomeMsg
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("welcome: %v", err)
	}

	act := protocol.ActMsg{
		Type: protocol.TypeAct, ProtocolVersion: protocol.Version,
		Kind: protocol.ActSetInput, Dir: [2]float64{0, 1},
	}
	if err := conn.WriteJSON(act); err != nil {
		t.Fatalf("act: %v", err)
	}

	// Give the reader loop a moment to enqueue, then step the sim until the
	// input shows up as motion.
	deadline := time.Now().Add(2 * time.Second)
	for w.Player().Vel.Z == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("SET_INPUT never reached the world")
		}
		time.Sleep(5 * time.Millisecond)
		w.StepOnce(1.0 / 30)
	}

	// The registered sink must have pushed STATE frames to the client.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read state: %v", err)
		}
		base, err := protocol.DecodeBase(raw)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if base.Type != protocol.TypeState {
			continue
		}
		var st protocol.StateMsg
		if err := json.Unmarshal(raw, &st); err != nil {
			t.Fatalf("state: %v", err)
		}
		if len(st.Entities) != 1 || st.Entities[0].Kind != "PLAYER" {
			t.Fatalf("state frame = %+v", st)
		}
		return
	}
}

func TestVersionlessActIsIgnored(t *testing.T) {
	_, w, ts := newTestServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version}); err != nil {
		t.Fatalf("hello: %v", err)
	}
	var welcome protocol.WelcomeMsg
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("welcome: %v", err)
	}

	act := protocol.ActMsg{Type: protocol.TypeAct, Kind: protocol.ActSetInput, Dir: [2]float64{0, 1}}
	if err := conn.WriteJSON(act); err != nil {
		t.Fatalf("act: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 10; i++ {
		w.StepOnce(1.0 / 30)
	}
	if w.Player().Vel.Z != 0 {
		t.Fatalf("act without protocol version moved the player")
	}
}
