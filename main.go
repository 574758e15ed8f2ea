package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"sever-and-wield/server/anatomy"
	"sever-and-wield/server/logging"
	"sever-and-wield/server/logging/sinks"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "listen address")
		seed        = flag.String("seed", "prototype", "deterministic world seed")
		logSinks    = flag.String("log-sinks", "console", "comma-separated log sinks (console,json)")
		logJSONPath = flag.String("log-json-path", "events.jsonl", "path for the json log sink")
		templateDir = flag.String("template-dir", "", "optional directory of anatomy template yaml files")
	)
	flag.Parse()

	router, err := buildLogRouter(*logSinks, *logJSONPath)
	if err != nil {
		log.Fatalf("failed to initialise logging: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.Close(ctx); err != nil {
			log.Printf("log router close: %v", err)
		}
	}()

	if *templateDir != "" {
		templates, err := anatomy.LoadTemplateDir(*templateDir)
		if err != nil {
			log.Fatalf("failed to load anatomy templates from %s: %v", *templateDir, err)
		}
		for _, tf := range templates {
			if err := anatomy.RegisterTemplate(tf.Template); err != nil {
				log.Fatalf("failed to register anatomy template %s: %v", tf.Path, err)
			}
		}
		log.Printf("registered %d anatomy templates from %s", len(templates), *templateDir)
	}

	world := newWorld(worldConfig{Seed: *seed}, router)
	hub := newHub(world)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	http.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		stats := router.Stats()
		payload := struct {
			Status        string                `json:"status"`
			ServerTime    int64                 `json:"serverTime"`
			Creatures     []diagnosticsCreature `json:"creatures"`
			TickRate      int                   `json:"tickRate"`
			Heartbeat     int64                 `json:"heartbeatMillis"`
			EventsLogged  uint64                `json:"eventsLogged"`
			EventsDropped uint64                `json:"eventsDropped"`
		}{
			Status:        "ok",
			ServerTime:    time.Now().UnixMilli(),
			Creatures:     hub.DiagnosticsSnapshot(),
			TickRate:      tickRate,
			Heartbeat:     heartbeatInterval.Milliseconds(),
			EventsLogged:  stats.EventsTotal,
			EventsDropped: stats.DroppedTotal,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	http.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		data, err := MarshalItemDefinitions(ItemDefinitions())
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	http.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		kind := anatomy.Kind(r.URL.Query().Get("kind"))
		if kind == "" {
			kind = anatomy.KindHumanoid
		}
		join, err := hub.Join(r.URL.Query().Get("name"), kind)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := json.Marshal(join)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		creatureID := r.URL.Query().Get("id")
		if creatureID == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed for %s: %v", creatureID, err)
			return
		}

		sub, snapshot, ok := hub.Subscribe(creatureID, conn)
		if !ok {
			message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown creature")
			conn.WriteMessage(websocket.CloseMessage, message)
			conn.Close()
			return
		}

		initial := stateMessage{
			Ver:        protocolVersion,
			Type:       "state",
			Creatures:  snapshot,
			Patches:    []Patch{},
			ServerTime: time.Now().UnixMilli(),
		}
		if !writeJSON(sub, initial) {
			disconnectAndBroadcast(hub, creatureID)
			return
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				disconnectAndBroadcast(hub, creatureID)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				log.Printf("discarding malformed message from %s: %v", creatureID, err)
				continue
			}

			switch msg.Type {
			case "equip":
				part, err := hub.Equip(creatureID, msg.Slot)
				ack := commandAckMessage{Ver: protocolVersion, Type: "ack", Cmd: "equip", OK: err == nil, Part: string(part)}
				if err != nil {
					ack.Reason = err.Error()
				}
				if !writeJSON(sub, ack) {
					disconnectAndBroadcast(hub, creatureID)
					return
				}
			case "unequip":
				_, err := hub.Unequip(creatureID, anatomy.PartType(msg.Part))
				ack := commandAckMessage{Ver: protocolVersion, Type: "ack", Cmd: "unequip", OK: err == nil, Part: msg.Part}
				if err != nil {
					ack.Reason = err.Error()
				}
				if !writeJSON(sub, ack) {
					disconnectAndBroadcast(hub, creatureID)
					return
				}
			case "strike":
				damage := msg.Amount
				if damage <= 0 {
					damage = 10
				}
				part, err := hub.Strike(creatureID, msg.Target, damage)
				ack := commandAckMessage{Ver: protocolVersion, Type: "ack", Cmd: "strike", OK: err == nil, Part: string(part)}
				if err != nil {
					ack.Reason = err.Error()
				}
				if !writeJSON(sub, ack) {
					disconnectAndBroadcast(hub, creatureID)
					return
				}
			case "heal":
				amount := msg.Amount
				if amount <= 0 {
					amount = 25
				}
				_, err := hub.Heal(creatureID, amount)
				ack := commandAckMessage{Ver: protocolVersion, Type: "ack", Cmd: "heal", OK: err == nil}
				if err != nil {
					ack.Reason = err.Error()
				}
				if !writeJSON(sub, ack) {
					disconnectAndBroadcast(hub, creatureID)
					return
				}
			case "heartbeat":
				now := time.Now()
				rtt, ok := hub.UpdateHeartbeat(creatureID, now, msg.SentAt)
				if !ok {
					continue
				}
				ack := heartbeatMessage{
					Type:       "heartbeat",
					ServerTime: now.UnixMilli(),
					ClientTime: msg.SentAt,
					RTTMillis:  rtt.Milliseconds(),
				}
				if !writeJSON(sub, ack) {
					disconnectAndBroadcast(hub, creatureID)
					return
				}
			default:
				log.Printf("unknown message type %q from %s", msg.Type, creatureID)
			}
		}
	})

	log.Printf("server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func writeJSON(sub *subscriber, payload any) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return true
	}
	sub.mu.Lock()
	defer sub.mu.Unlock()
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return sub.conn.WriteMessage(websocket.TextMessage, data) == nil
}

func disconnectAndBroadcast(hub *Hub, creatureID string) {
	creatures := hub.Disconnect(creatureID)
	if creatures != nil {
		go hub.broadcastState(creatures, nil)
	}
}

func buildLogRouter(sinkList, jsonPath string) (*logging.Router, error) {
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = strings.Split(sinkList, ",")
	cfg.JSON.FilePath = jsonPath
	cfg.Fields = map[string]any{"service": "sever-and-wield"}

	var named []logging.NamedSink
	if cfg.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console),
		})
	}
	if cfg.HasSink("json") {
		file, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		named = append(named, logging.NamedSink{
			Name: "json",
			Sink: sinks.NewJSON(file, cfg.JSON.FlushInterval),
		})
	}

	return logging.NewRouter(nil, cfg, named)
}
