package main

import (
	"sever-and-wield/server/anatomy"
	"sever-and-wield/server/stats"
)

const protocolVersion = 1

// CreatureView is the wire representation of a creature snapshot.
type CreatureView struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Kind      anatomy.Kind        `json:"kind"`
	Alive     bool                `json:"alive"`
	Parts     []PartHealthPayload `json:"parts"`
	Inventory Inventory           `json:"inventory"`
	Equipment Equipment           `json:"equipment"`
	Stats     StatsPayload        `json:"stats"`
}

func (c *creatureState) snapshot() CreatureView {
	parts := make([]PartHealthPayload, 0, len(c.Anatomy.Parts))
	for i := range c.Anatomy.Parts {
		parts = append(parts, partHealthPayload(&c.Anatomy.Parts[i]))
	}
	return CreatureView{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      c.Kind,
		Alive:     c.Anatomy.Alive(),
		Parts:     parts,
		Inventory: c.Inventory.Clone(),
		Equipment: c.Equipment.Clone(),
		Stats:     statsPayloadFromSnapshot(c.stats.Snapshot()),
	}
}

func statsPayloadFromSnapshot(snapshot stats.Snapshot) StatsPayload {
	return StatsPayload{
		Power:     snapshot.Totals[stats.StatPower],
		Defense:   snapshot.Totals[stats.StatDefense],
		Agility:   snapshot.Totals[stats.StatAgility],
		Vitality:  snapshot.Totals[stats.StatVitality],
		MaxHealth: snapshot.Derived[stats.DerivedMaxHealth],
	}
}

type joinResponse struct {
	Ver       int              `json:"ver"`
	ID        string           `json:"id"`
	Creatures []CreatureView   `json:"creatures"`
	Catalog   []ItemDefinition `json:"catalog"`
	Seed      string           `json:"seed"`
}

type stateMessage struct {
	Ver        int            `json:"ver"`
	Type       string         `json:"type"`
	Creatures  []CreatureView `json:"creatures,omitempty"`
	Patches    []Patch        `json:"patches"`
	Tick       uint64         `json:"t"`
	ServerTime int64          `json:"serverTime"`
}

type clientMessage struct {
	Type   string  `json:"type"`
	SentAt int64   `json:"sentAt,omitempty"`
	Slot   int     `json:"slot,omitempty"`
	Part   string  `json:"part,omitempty"`
	Target string  `json:"target,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

type heartbeatMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

type commandAckMessage struct {
	Ver    int    `json:"ver"`
	Type   string `json:"type"`
	Cmd    string `json:"cmd"`
	OK     bool   `json:"ok"`
	Part   string `json:"part,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type diagnosticsCreature struct {
	Ver           int    `json:"ver"`
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}
