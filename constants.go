package main

import "time"

const (
	tickRate          = 15
	writeWait         = 10 * time.Second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval

	defaultWorldSeed = int64(1742)

	baselineCreatureHealth = 100.0
)
