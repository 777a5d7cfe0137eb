package worldevent

import (
	"context"
	"sync"
	"time"

	"github.com/jynba/worldline/internal/clock"
	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/logger"
)

// Dispatcher holds the single current world message. A new narrative event
// replaces the message and resets its display window; when the window
// expires the message clears. Set and clear are both announced on the bus.
type Dispatcher struct {
	narrator   *Narrator
	bus        event.Bus
	after      clock.AfterFunc
	displayFor time.Duration

	mu      sync.Mutex
	timer   clock.Timer
	gen     uint64
	eventID string
	message string
}

// NewDispatcher creates a dispatcher. after nil means real timers,
// displayFor <= 0 means the default display window.
func NewDispatcher(narrator *Narrator, bus event.Bus, after clock.AfterFunc, displayFor time.Duration) *Dispatcher {
	if after == nil {
		after = clock.RealAfterFunc
	}
	if displayFor <= 0 {
		displayFor = DisplayDuration
	}
	return &Dispatcher{
		narrator:   narrator,
		bus:        bus,
		after:      after,
		displayFor: displayFor,
	}
}

// Start subscribes the dispatcher to tracker status changes.
func (d *Dispatcher) Start() {
	d.bus.Subscribe(event.TrackerStatusChanged, d.onStatusChanged)
}

func (d *Dispatcher) onStatusChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.StatusChangedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}

	eventID, ok := MapChange(domain.StatusChange{
		ItemID:     payload.ItemID,
		Kind:       payload.Kind,
		From:       payload.From,
		To:         payload.To,
		OccurredAt: payload.OccurredAt,
	})
	if !ok {
		return nil
	}

	d.Display(ctx, eventID)
	return nil
}

// Display narrates the event and makes it the current message, replacing
// any message already showing and restarting the display window.
func (d *Dispatcher) Display(ctx context.Context, eventID string) {
	message := d.narrator.Narrate(ctx, eventID)

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	// Stop does not guarantee the old callback was canceled: it may already
	// be running and blocked on d.mu. The generation counter makes such a
	// superseded expiry a no-op.
	d.gen++
	gen := d.gen
	d.eventID = eventID
	d.message = message
	d.timer = d.after(d.displayFor, func() { d.expire(gen) })
	d.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgMessageSet, "event_id", eventID, "message", message)
	d.publish(ctx, eventID, message)
}

// expire clears the current message when the display window ends. A stale
// window, one whose message has since been replaced, clears nothing.
func (d *Dispatcher) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.eventID = ""
	d.message = ""
	d.timer = nil
	d.mu.Unlock()

	ctx := context.Background()
	logger.FromContext(ctx).Debug(LogMsgMessageCleared)
	d.publish(ctx, "", "")
}

// CurrentMessage returns the showing event id and message, both empty when
// nothing is on display.
func (d *Dispatcher) CurrentMessage() (eventID, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eventID, d.message
}

// Stop cancels any pending expiry without clearing the message.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Dispatcher) publish(ctx context.Context, eventID, message string) {
	evt := event.New(event.WorldMessageUpdated, event.WorldMessagePayloadV1{
		EventID: eventID,
		Message: message,
	})
	if err := d.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgPublishFailed, "error", err)
	}
}
