package app

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/pairline/internal/core"
	"github.com/dkeye/pairline/internal/domain"
)

func TestRoomManager_GetOrCreateIsStable(t *testing.T) {
	m := NewRoomManager()
	a := m.GetOrCreate("abc")
	b := m.GetOrCreate("abc")
	if a != b {
		t.Fatalf("GetOrCreate returned different rooms for the same id")
	}
	if _, ok := m.Get("other"); ok {
		t.Fatalf("Get created a room")
	}
}

func TestRoomManager_ReleaseOnlyEmpty(t *testing.T) {
	m := NewRoomManager()
	room := m.GetOrCreate("abc")
	if _, err := room.Join("A", nil); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if m.Release("abc") {
		t.Fatalf("Release succeeded on occupied room")
	}

	room.Leave("A", nil)
	if !m.Release("abc") {
		t.Fatalf("Release failed on empty room")
	}
	if _, ok := m.Get("abc"); ok {
		t.Fatalf("room still in table")
	}
	if _, err := room.Join("B", nil); err != core.ErrRoomClosed {
		t.Fatalf("Join on released room err=%v", err)
	}

	fresh := m.GetOrCreate("abc")
	if fresh == room {
		t.Fatalf("released room reused")
	}
	if fresh.State() != domain.RoomEmpty {
		t.Fatalf("fresh state=%v", fresh.State())
	}
}

func TestRoomManager_List(t *testing.T) {
	m := NewRoomManager()
	_, _ = m.GetOrCreate("a").Join("A", nil)
	_, _ = m.GetOrCreate("b").Join("B1", nil)
	_, _ = m.GetOrCreate("b").Join("B2", nil)

	got := map[domain.RoomID]core.RoomInfo{}
	for _, info := range m.List() {
		got[info.ID] = info
	}
	if got["a"].State != domain.RoomWaiting || got["a"].MemberCount != 1 {
		t.Fatalf("room a=%+v", got["a"])
	}
	if got["b"].State != domain.RoomPaired || got["b"].MemberCount != 2 {
		t.Fatalf("room b=%+v", got["b"])
	}
}

func TestRoomInfoJSON(t *testing.T) {
	b, err := json.Marshal(core.RoomInfo{ID: "a", State: domain.RoomWaiting, MemberCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"roomId":"a","state":"WAITING","memberCount":1}` {
		t.Fatalf("got %s", b)
	}
}

func TestPolicies(t *testing.T) {
	if (SimplePolicy{}).OnBackPressure("A", core.ErrBackpressure) != DropFrame {
		t.Fatalf("SimplePolicy should drop")
	}
	if (StrictPolicy{}).OnBackPressure("A", core.ErrBackpressure) != KickMember {
		t.Fatalf("StrictPolicy should kick on backpressure")
	}
	if (StrictPolicy{}).OnBackPressure("A", core.ErrConnClosed) != DropFrame {
		t.Fatalf("StrictPolicy should drop on closed connection")
	}
}
