package ws

import "testing"

func TestHubAddAndRemoveClient(t *testing.T) {
	hub := NewHub()

	hub.AddClient(1, nil, ConnInfo{ConnID: "c1", UserID: 2})
	if len(hub.rooms) != 1 {
		t.Fatalf("expected room to be created")
	}
	if _, ok := hub.connInfo[1]; !ok {
		t.Fatalf("expected conn info to be tracked")
	}

	hub.RemoveClient(1, nil)
	if len(hub.rooms) != 0 {
		t.Fatalf("expected room to be removed")
	}
	if len(hub.connInfo) != 0 {
		t.Fatalf("expected conn info to be removed")
	}
}

func TestHubRemoveUnknownClient(t *testing.T) {
	hub := NewHub()

	hub.RemoveClient(9, nil)
	if len(hub.rooms) != 0 {
		t.Fatalf("expected no rooms")
	}
}
