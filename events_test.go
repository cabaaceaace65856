package retouch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents_SubscribeOrderAndRemove(t *testing.T) {
	var em emitter
	var calls []string

	a := em.subscribe(ObserverFunc(func(Event) { calls = append(calls, "a") }))
	em.subscribe(ObserverFunc(func(Event) { calls = append(calls, "b") }))

	em.emit(MaskChanged{})
	assert.Equal(t, []string{"a", "b"}, calls)

	a.Remove()
	a.Remove()
	calls = nil
	em.emit(MaskChanged{})
	assert.Equal(t, []string{"b"}, calls)
	assert.Equal(t, 1, em.len())
}

func TestEvents_RemoveWhileNotifying(t *testing.T) {
	var em emitter
	n := 0

	var sub Subscription
	sub = em.subscribe(ObserverFunc(func(Event) {
		n++
		sub.Remove()
	}))
	em.subscribe(ObserverFunc(func(Event) { n++ }))

	em.emit(ZoomChanged{Zoom: 2})
	em.emit(ZoomChanged{Zoom: 3})
	assert.Equal(t, 3, n)
}

func TestEvents_GroupRelease(t *testing.T) {
	hl := NewHeadless(10, 10)
	var subs subscriptions

	subs.add(hl.Listen(inputHandler{}))
	subs.add(hl.Listen(inputHandler{}))
	assert.Equal(t, 2, hl.Listeners())

	subs.release()
	assert.Zero(t, hl.Listeners())
	assert.Empty(t, subs)

	subs.release()
}

func TestEvents_OnMaskChange(t *testing.T) {
	ed, hl := newTestEditor(t, 50, 50, 100, 100)

	n := 0
	sub := ed.OnMaskChange(func() { n++ })

	hl.PointerDown(10, 10, ButtonPrimary)
	hl.PointerUp(10, 10)
	assert.NoError(t, ed.ClearMask())
	assert.NoError(t, ed.Stroke(Eraser, 5, Point{1, 1}, Point{4, 4}))
	assert.NoError(t, ed.ZoomIn())
	assert.Equal(t, 3, n)

	sub.Remove()
	assert.NoError(t, ed.ClearMask())
	assert.Equal(t, 3, n)
}
