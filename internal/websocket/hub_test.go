package websocket

import (
	"testing"
	"time"

	"rentwheels-backend/internal/models"
)

func waitForDisconnect(t *testing.T, hub *Hub, userID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.IsUserConnected(userID) {
		if time.Now().After(deadline) {
			t.Fatal("client with full buffer was never dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("u1", "user", nil, hub)
	hub.register <- client

	hub.BroadcastToUser("u1", BookingEvent{
		Type:    EventBookingStatus,
		Booking: models.BookingResponse{ID: "b1", Status: models.BookingStatusConfirmed},
	})

	select {
	case data := <-client.send:
		if len(data) == 0 {
			t.Error("empty payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered to client")
	}
}

func TestHubBroadcastToRoleSkipsOtherRoles(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	admin := NewClient("a1", "admin", nil, hub)
	user := NewClient("u1", "user", nil, hub)
	hub.register <- admin
	hub.register <- user

	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != 2 {
		if time.Now().After(deadline) {
			t.Fatal("clients never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.BroadcastToRole("admin", BookingEvent{
		Type:    EventBookingCreated,
		Booking: models.BookingResponse{ID: "b1"},
	})

	select {
	case <-admin.send:
	case <-time.After(2 * time.Second):
		t.Fatal("admin never received the event")
	}

	select {
	case <-user.send:
		t.Error("user received an admin-only event")
	default:
	}
}

// A client whose buffer is full gets dropped by the user-addressed path
// while role broadcasts iterate the same client map. Run under -race: the
// drop is a map write and must not overlap the broadcast iteration.
func TestHubDropsFullBufferClientDuringRoleBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stuck := NewClient("a1", "admin", nil, hub)
	hub.register <- stuck

	deadline := time.Now().Add(2 * time.Second)
	for !hub.IsUserConnected("a1") {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Fill the send buffer so the next user-addressed message trips the
	// disconnect branch.
	for i := 0; i < cap(stuck.send); i++ {
		stuck.send <- []byte("backlog")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.BroadcastToRole("admin", BookingEvent{
				Type:    EventBookingCreated,
				Booking: models.BookingResponse{ID: "b-new"},
			})
		}
	}()

	for i := 0; i < 10; i++ {
		hub.BroadcastToUser("a1", BookingEvent{
			Type:    EventBookingStatus,
			Booking: models.BookingResponse{ID: "b1", Status: models.BookingStatusConfirmed},
		})
	}

	<-done
	waitForDisconnect(t, hub, "a1")
}
