package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"sever-and-wield/server/logging"
	"sever-and-wield/server/logging/equipment"
)

// ConsoleSink renders gameplay events as single operator-readable lines.
// Equipment and combat payloads get dedicated renderings; anything else
// falls back to compact JSON.
type ConsoleSink struct {
	logger   *log.Logger
	useColor bool
}

func NewConsoleSink(w io.Writer, cfg logging.ConsoleConfig) *ConsoleSink {
	return &ConsoleSink{
		logger:   log.New(w, "", log.LstdFlags),
		useColor: cfg.UseColor,
	}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	if s.logger == nil {
		return nil
	}
	s.logger.Printf("%s [%s] tick=%d actor=%s %s",
		s.severityTag(event.Severity), event.Type, event.Tick, formatEntity(event.Actor), describePayload(event))
	return nil
}

func (s *ConsoleSink) Close(context.Context) error {
	return nil
}

func (s *ConsoleSink) severityTag(sev logging.Severity) string {
	if !s.useColor {
		return sev.String()
	}
	switch sev {
	case logging.SeverityWarn:
		return "\x1b[33m" + sev.String() + "\x1b[0m"
	case logging.SeverityError:
		return "\x1b[31m" + sev.String() + "\x1b[0m"
	default:
		return sev.String()
	}
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}

func describePayload(event logging.Event) string {
	switch p := event.Payload.(type) {
	case equipment.EquipPayload:
		line := fmt.Sprintf("item=%s part=%s", p.Item, p.Part)
		if len(p.RequiredTags) > 0 {
			line += " tags=" + strings.Join(p.RequiredTags, ",")
		}
		if p.Swapped != "" {
			line += " swapped=" + p.Swapped
		}
		return line
	case equipment.UnequipPayload:
		line := fmt.Sprintf("item=%s part=%s", p.Item, p.Part)
		if p.Forced {
			line += " forced"
		}
		return line
	case equipment.NoMatchPayload:
		return fmt.Sprintf("item=%s tags=%s reason=%q", p.Item, strings.Join(p.RequiredTags, ","), p.Reason)
	case equipment.PartDestroyedPayload:
		line := fmt.Sprintf("part=%s damage=%.1f", p.Part, p.Damage)
		if p.Dropped != "" {
			line += " dropped=" + p.Dropped
		}
		if p.Vital {
			line += " vital"
		}
		return line
	case nil:
		return ""
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Sprintf("payload=%v", p)
		}
		return fmt.Sprintf("payload=%s", data)
	}
}
