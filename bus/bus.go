package bus

import (
	"context"

	"github.com/jiegec/classroom-helper/config"
)

// Bus is the fan-in channel every fetch and grade worker publishes onto. The
// controller is the sole consumer; workers are the many producers.
type Bus interface {
	// Messages returns the channel the controller drains on every tick.
	Messages() <-chan Message

	// Send publishes a message. It never blocks the caller: on a full bus
	// the message being sent is dropped and the pending ones are kept,
	// rather than stall a worker.
	Send(m Message)
}

type bus struct {
	out chan Message
}

// New creates a Bus buffered per config.ChannelBuffer. Concurrency is
// bounded by the workpool.Pool each producer runs on, not by the bus
// itself.
func New(ctx context.Context) Bus {
	return &bus{
		out: make(chan Message, config.Viper(ctx).GetInt(config.ChannelBuffer)),
	}
}

func (b *bus) Messages() <-chan Message {
	return b.out
}

func (b *bus) Send(m Message) {
	select {
	case b.out <- m:
	default:
		// Buffer full: drop rather than block a worker. The controller's
		// tick loop drains faster than workers can fill a reasonably sized
		// buffer in practice.
	}
}
