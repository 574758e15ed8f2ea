package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Clock stamps events as they pass the router. Tests substitute a fixed
// clock to assert on emission times.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Sink receives routed events. Each sink gets its own goroutine and its own
// copy of every event, so implementations only need to guard their writer.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans gameplay events out to the configured sinks without blocking
// the simulation loop. Publish never blocks: events below the severity floor
// are discarded up front and a full queue drops the event and counts it.
type Router struct {
	clock    Clock
	minimum  Severity
	fields   map[string]any
	queue    chan Event
	lanes    []*sinkLane
	fallback *log.Logger
	quit     chan struct{}
	closed   atomic.Bool
	wg       sync.WaitGroup

	published    atomic.Uint64
	dropped      atomic.Uint64
	warnEvery    time.Duration
	nextDropWarn atomic.Int64
}

type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

func NewRouter(clock Clock, cfg Config, namedSinks []NamedSink) (*Router, error) {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = 256
	}
	r := &Router{
		clock:     clock,
		minimum:   cfg.MinimumSeverity,
		queue:     make(chan Event, depth),
		fallback:  log.New(os.Stderr, "[events] ", log.LstdFlags),
		quit:      make(chan struct{}),
		warnEvery: cfg.DropWarnEvery,
	}
	if len(cfg.Fields) > 0 {
		r.fields = make(map[string]any, len(cfg.Fields))
		for k, v := range cfg.Fields {
			r.fields[k] = v
		}
	}

	for _, named := range namedSinks {
		if named.Sink == nil {
			continue
		}
		r.lanes = append(r.lanes, &sinkLane{
			name:     named.Name,
			sink:     named.Sink,
			events:   make(chan Event, depth),
			fallback: r.fallback,
		})
	}

	r.wg.Add(1)
	go r.dispatch()
	for _, lane := range r.lanes {
		r.wg.Add(1)
		go func(l *sinkLane) {
			defer r.wg.Done()
			l.run()
		}(lane)
	}
	return r, nil
}

// Publish enqueues an event for delivery. Untyped events and events below
// the configured severity floor never enter the queue.
func (r *Router) Publish(ctx context.Context, event Event) {
	if event.Type == "" || r.closed.Load() {
		return
	}
	if event.Severity < r.minimum {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	select {
	case r.queue <- event:
	default:
		r.noteDrop(event)
	}
}

func (r *Router) dispatch() {
	defer func() {
		for _, lane := range r.lanes {
			close(lane.events)
		}
		r.wg.Done()
	}()
	for {
		select {
		case event := <-r.queue:
			r.deliver(event)
		case <-r.quit:
			for {
				select {
				case event := <-r.queue:
					r.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (r *Router) deliver(event Event) {
	if len(r.fields) > 0 {
		event = cloneForFields(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	r.published.Add(1)
	for _, lane := range r.lanes {
		lane.offer(event)
	}
}

func (r *Router) noteDrop(event Event) {
	r.dropped.Add(1)
	every := r.warnEvery
	if every <= 0 {
		every = 10 * time.Second
	}
	now := time.Now().UnixNano()
	last := r.nextDropWarn.Load()
	if last == 0 || now >= last {
		if r.nextDropWarn.CompareAndSwap(last, now+every.Nanoseconds()) {
			r.fallback.Printf("event queue full, dropping type=%s tick=%d", event.Type, event.Tick)
		}
	}
}

// Close drains the queue, stops the lanes and closes every sink. Events
// published after Close are discarded.
func (r *Router) Close(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(r.quit)
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	var firstErr error
	for _, lane := range r.lanes {
		if err := lane.sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) Stats() RouterStats {
	return RouterStats{
		EventsTotal:  r.published.Load(),
		DroppedTotal: r.dropped.Load(),
	}
}

// sinkLane owns one sink and its backlog. Write failures back the lane off
// exponentially instead of stalling the dispatcher.
type sinkLane struct {
	name     string
	sink     Sink
	events   chan Event
	fallback *log.Logger
}

func (l *sinkLane) offer(event Event) {
	select {
	case l.events <- cloneForFields(event):
	default:
		l.fallback.Printf("sink %s backlog full, dropping type=%s", l.name, event.Type)
	}
}

func (l *sinkLane) run() {
	var failures int
	for event := range l.events {
		if failures > 0 {
			time.Sleep(backoffDelay(failures))
		}
		if err := l.sink.Write(event); err != nil {
			failures++
			l.fallback.Printf("sink %s write: %v (backoff %s)", l.name, err, backoffDelay(failures))
			continue
		}
		failures = 0
	}
}

func backoffDelay(failures int) time.Duration {
	shift := failures
	if shift > 5 {
		shift = 5
	}
	return time.Duration(1<<shift) * time.Second
}
