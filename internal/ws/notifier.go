package ws

import (
	"log"

	"feedblog/internal/models"
)

// HubNotifier implements service.Notifier over the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) PostCreated(post *models.Post) {
	evt, err := NewEvent(EventTypePostCreated, PostPayload{Post: *post})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) PostUpdated(post *models.Post) {
	evt, err := NewEvent(EventTypePostUpdated, PostPayload{Post: *post})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) PostDeleted(postID string) {
	evt, err := NewEvent(EventTypePostDeleted, PostDeletedPayload{PostID: postID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}
