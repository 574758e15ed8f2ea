package main

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sever-and-wield/server/anatomy"
)

// Hub owns the world and every live subscriber. All world mutation happens
// under the hub mutex, so the world itself needs no locking.
type Hub struct {
	mu          sync.Mutex
	world       *World
	subscribers map[string]*subscriber
	sessions    map[string]*session
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

type session struct {
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

func newHub(world *World) *Hub {
	return &Hub{
		world:       world,
		subscribers: make(map[string]*subscriber),
		sessions:    make(map[string]*session),
	}
}

// Join registers a new creature of the requested kind and returns the latest
// snapshot plus the item catalog.
func (h *Hub) Join(name string, kind anatomy.Kind) (joinResponse, error) {
	creatureID := "creature-" + uuid.NewString()
	if name == "" {
		name = creatureID
	}

	h.mu.Lock()
	creature, err := h.world.AddCreature(creatureID, name, kind)
	if err != nil {
		h.mu.Unlock()
		return joinResponse{}, err
	}

	seedStarterInventory(creature)

	h.sessions[creatureID] = &session{lastHeartbeat: time.Now()}
	creatures := h.snapshotLocked()
	seed := h.world.seed
	h.mu.Unlock()

	go h.broadcastState(creatures, nil)

	return joinResponse{
		Ver:       protocolVersion,
		ID:        creatureID,
		Creatures: creatures,
		Catalog:   ItemDefinitions(),
		Seed:      seed,
	}, nil
}

func seedStarterInventory(creature *creatureState) {
	starter := []ItemStack{
		{Type: ItemTypeGold, Quantity: 50},
		{Type: ItemTypeHealthPotion, Quantity: 2},
		{Type: ItemTypeIronSword, Quantity: 1},
		{Type: ItemTypeTorch, Quantity: 1},
	}
	for _, stack := range starter {
		if _, err := creature.Inventory.AddStack(stack); err != nil {
			log.Printf("failed to seed %s for %s: %v", stack.Type, creature.ID, err)
		}
	}
}

// Subscribe associates a WebSocket connection with an existing creature.
func (h *Hub) Subscribe(creatureID string, conn *websocket.Conn) (*subscriber, []CreatureView, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.world.Creature(creatureID); !ok {
		return nil, nil, false
	}

	if sess, ok := h.sessions[creatureID]; ok {
		sess.lastHeartbeat = time.Now()
	} else {
		h.sessions[creatureID] = &session{lastHeartbeat: time.Now()}
	}

	if existing, ok := h.subscribers[creatureID]; ok {
		existing.conn.Close()
	}

	sub := &subscriber{conn: conn}
	h.subscribers[creatureID] = sub
	return sub, h.snapshotLocked(), true
}

// Disconnect removes a creature and closes any active subscriber connection.
func (h *Hub) Disconnect(creatureID string) []CreatureView {
	h.mu.Lock()
	sub, subOK := h.subscribers[creatureID]
	if subOK {
		delete(h.subscribers, creatureID)
	}
	delete(h.sessions, creatureID)

	_, creatureOK := h.world.Creature(creatureID)
	if creatureOK {
		h.world.RemoveCreature(creatureID)
	}

	var creatures []CreatureView
	if creatureOK {
		creatures = h.snapshotLocked()
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}

	if !creatureOK {
		return nil
	}
	return creatures
}

// Equip moves the item in the inventory slot onto a matching body part.
func (h *Hub) Equip(creatureID string, slot int) (anatomy.PartType, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.EquipFromInventory(creatureID, slot)
}

// Unequip returns the item on the given part to the inventory.
func (h *Hub) Unequip(creatureID string, part anatomy.PartType) (ItemStack, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.UnequipToInventory(creatureID, part)
}

// Strike damages a weighted-random part of the target creature.
func (h *Hub) Strike(attackerID, targetID string, damage float64) (anatomy.PartType, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.world.Creature(attackerID); !ok {
		return "", errUnknownCreature
	}
	part, err := h.world.Strike(targetID, damage)
	if err != nil {
		return "", err
	}
	if part == nil {
		return "", errors.New("nothing_to_hit")
	}
	return part.Type, nil
}

// Heal restores health across the creature's body parts.
func (h *Hub) Heal(creatureID string, amount float64) (float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.Heal(creatureID, amount)
}

// UpdateHeartbeat records the most recent heartbeat time and RTT.
func (h *Hub) UpdateHeartbeat(creatureID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[creatureID]
	if !ok {
		return 0, false
	}

	sess.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			sess.lastRTT = rtt
		}
	}

	return sess.lastRTT, true
}

// advance runs a single simulation step, prunes stale sessions, and returns
// the new snapshot plus subscribers to close.
func (h *Hub) advance(now time.Time) ([]CreatureView, []Patch, []*subscriber) {
	h.mu.Lock()

	toClose := make([]*subscriber, 0)
	for id, sess := range h.sessions {
		if now.Sub(sess.lastHeartbeat) <= disconnectAfter {
			continue
		}
		if sub, ok := h.subscribers[id]; ok {
			toClose = append(toClose, sub)
			delete(h.subscribers, id)
		}
		delete(h.sessions, id)
		h.world.RemoveCreature(id)
		log.Printf("disconnecting %s due to heartbeat timeout", id)
	}

	h.world.advanceTick()
	patches := h.world.drainPatches()
	creatures := h.snapshotLocked()
	h.mu.Unlock()

	return creatures, patches, toClose
}

// RunSimulation drives the fixed-rate tick loop until the stop channel closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			creatures, patches, toClose := h.advance(now)
			for _, sub := range toClose {
				sub.conn.Close()
			}
			h.broadcastState(creatures, patches)
		}
	}
}

// DiagnosticsSnapshot exposes heartbeat data for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []diagnosticsCreature {
	h.mu.Lock()
	defer h.mu.Unlock()

	creatures := make([]diagnosticsCreature, 0, len(h.sessions))
	for id, sess := range h.sessions {
		creatures = append(creatures, diagnosticsCreature{
			Ver:           protocolVersion,
			ID:            id,
			LastHeartbeat: sess.lastHeartbeat.UnixMilli(),
			RTTMillis:     sess.lastRTT.Milliseconds(),
		})
	}
	return creatures
}

// snapshotLocked copies creature views for broadcasting while holding the mutex.
func (h *Hub) snapshotLocked() []CreatureView {
	ids := h.world.CreatureIDs()
	creatures := make([]CreatureView, 0, len(ids))
	for _, id := range ids {
		if creature, ok := h.world.Creature(id); ok {
			creatures = append(creatures, creature.snapshot())
		}
	}
	return creatures
}

// broadcastState sends the latest world snapshot to every subscriber.
func (h *Hub) broadcastState(creatures []CreatureView, patches []Patch) {
	if creatures == nil {
		h.mu.Lock()
		creatures = h.snapshotLocked()
		h.mu.Unlock()
	}
	if patches == nil {
		patches = []Patch{}
	}

	h.mu.Lock()
	tick := h.world.currentTick
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	msg := stateMessage{
		Ver:        protocolVersion,
		Type:       "state",
		Creatures:  creatures,
		Patches:    patches,
		Tick:       tick,
		ServerTime: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("failed to send update to %s: %v", id, err)
			creatures := h.Disconnect(id)
			if creatures != nil {
				go h.broadcastState(creatures, nil)
			}
		}
	}
}
