package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func fromChannel(channelID string) Filter {
	return func(m *discord.Message) bool { return m.ChannelID == channelID }
}

func TestWaitTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := NewWaiters()

	start := time.Now()
	res := w.Wait(context.Background(), fromChannel("c1"), 20*time.Millisecond)

	assert.Equal(t, TimedOut, res.Status)
	assert.Nil(t, res.Message)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 0, w.Len())
	assert.False(t, w.Offer(&discord.Message{ChannelID: "c1"}), "a timed out waiter takes nothing")
}

func TestWaitCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := NewWaiters()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan WaitResult, 1)
	go func() { done <- w.Wait(ctx, fromChannel("c1"), time.Minute) }()
	require.Eventually(t, func() bool { return w.Len() == 1 }, time.Second, time.Millisecond)

	cancel()
	res := <-done
	assert.Equal(t, Cancelled, res.Status)
	assert.Equal(t, 0, w.Len())
}

func TestOfferRespectsFilterAndOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := NewWaiters()

	first := make(chan WaitResult, 1)
	second := make(chan WaitResult, 1)
	go func() { first <- w.Wait(context.Background(), fromChannel("c1"), time.Second) }()
	require.Eventually(t, func() bool { return w.Len() == 1 }, time.Second, time.Millisecond)
	go func() { second <- w.Wait(context.Background(), fromChannel("c1"), time.Second) }()
	require.Eventually(t, func() bool { return w.Len() == 2 }, time.Second, time.Millisecond)

	assert.False(t, w.Offer(&discord.Message{ChannelID: "other"}))
	assert.True(t, w.Offer(&discord.Message{ChannelID: "c1", Content: "a"}))
	assert.True(t, w.Offer(&discord.Message{ChannelID: "c1", Content: "b"}))
	assert.False(t, w.Offer(&discord.Message{ChannelID: "c1", Content: "c"}))

	assert.Equal(t, "a", (<-first).Message.Content)
	assert.Equal(t, "b", (<-second).Message.Content)
}

// Offers racing the timeout resolve every wait exactly once.
func TestOfferRacingTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := NewWaiters()
	const n = 100

	var answered, timedOut, accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			res := w.Wait(context.Background(), fromChannel("race"), time.Millisecond)
			switch res.Status {
			case Answered:
				assert.NotNil(t, res.Message)
				answered.Add(1)
			case TimedOut:
				timedOut.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			if w.Offer(&discord.Message{ChannelID: "race"}) {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(n), answered.Load()+timedOut.Load())
	assert.Equal(t, accepted.Load(), answered.Load(), "every accepted offer answers exactly one wait")
	assert.Equal(t, 0, w.Len())
}
