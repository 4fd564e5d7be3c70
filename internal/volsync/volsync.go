// Package volsync is the broadcast channel between the session timer and
// any number of volume mixers.
//
// Delivery is synchronous on the publishing goroutine but never
// re-entrant: a message published from inside a listener is queued and
// delivered after the current message has reached every listener, so all
// listeners observe the same global publish order.
package volsync

import "sync"

// Message is one of VolumeRampUpdate, RestoreVolumeRequest or
// RestoreVolumeResponse.
type Message interface {
	volumeMessage()
}

// VolumeRampUpdate is published by the timer when the ramp target changes.
type VolumeRampUpdate struct {
	Volume         int
	Phase          int
	ElapsedSeconds int
	TotalSeconds   int
}

// RestoreVolumeRequest asks the timer to resend the ramp volume for the
// current elapsed time.
type RestoreVolumeRequest struct{}

// RestoreVolumeResponse answers a RestoreVolumeRequest.
type RestoreVolumeResponse struct {
	Volume int
	Phase  int
}

func (VolumeRampUpdate) volumeMessage()      {}
func (RestoreVolumeRequest) volumeMessage()  {}
func (RestoreVolumeResponse) volumeMessage() {}

// Listener receives every message published while it is subscribed.
type Listener func(Message)

// Subscription is a registered listener. Close deregisters it.
type Subscription struct {
	bus    *Bus
	fn     Listener
	closed bool
}

// Close stops delivery to this listener, including messages already
// queued but not yet delivered.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s)
}

type delivery struct {
	sub *Subscription
	msg Message
}

// Bus fans messages out to its subscribers.
type Bus struct {
	mu          sync.Mutex
	subs        []*Subscription
	queue       []delivery
	dispatching bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for messages published from now on.
func (b *Bus) Subscribe(fn Listener) *Subscription {
	s := &Subscription{bus: b, fn: fn}
	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()
	return s
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.closed = true
	for i, sub := range b.subs {
		if sub == s {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len reports the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish delivers msg to every listener registered at the time of the
// call. It returns once the queue is drained, unless another Publish on the
// call stack is already draining it. A panicking listener propagates the
// panic to the draining caller; deliveries still queued are made by the
// next Publish.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	for _, s := range b.subs {
		b.queue = append(b.queue, delivery{sub: s, msg: msg})
	}
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	b.mu.Unlock()

	drained := false
	defer func() {
		if !drained {
			b.mu.Lock()
			b.dispatching = false
			b.mu.Unlock()
		}
	}()

	for {
		d, ok := b.next()
		if !ok {
			drained = true
			return
		}
		d.sub.fn(d.msg)
	}
}

// next pops the next live delivery. When the queue is empty it clears
// dispatching under the same lock, so a concurrent Publish either sees its
// message drained here or starts draining itself.
func (b *Bus) next() (delivery, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.queue) > 0 {
		d := b.queue[0]
		b.queue = b.queue[1:]
		if !d.sub.closed {
			return d, true
		}
	}
	b.queue = nil
	b.dispatching = false
	return delivery{}, false
}
