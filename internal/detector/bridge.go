package detector

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/valpere/verbico/internal/heuristic"
	"github.com/valpere/verbico/internal/upstream"
)

// Bridge is the detection entry point used by the server and local clients.
// Concurrent requests for the same text share one chain run.
type Bridge struct {
	chain *Chain
	group singleflight.Group
}

// NewBridge builds api -> [lingua] -> heuristic. A nil completer leaves the
// api step in place; it reports a missing credential and falls through.
func NewBridge(completer upstream.Completer, statistical bool) *Bridge {
	strategies := []Strategy{NewAPIStrategy(completer)}
	if statistical {
		strategies = append(strategies, NewLinguaStrategy())
	}
	return NewBridgeWithChain(NewChain(strategies...))
}

func NewBridgeWithChain(chain *Chain) *Bridge {
	return &Bridge{chain: chain}
}

// Strategies lists the chain steps in order.
func (b *Bridge) Strategies() []string {
	return b.chain.Names()
}

// Detect never fails. The shared chain run is detached from any single
// caller's cancellation; a caller whose ctx ends first gets the heuristic
// answer while the others keep waiting for the run.
func (b *Bridge) Detect(ctx context.Context, text string) Detection {
	ch := b.group.DoChan(text, func() (interface{}, error) {
		return b.chain.Detect(context.WithoutCancel(ctx), text), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Detection)
	case <-ctx.Done():
		return Detection{Code: heuristic.Detect(text), Strategy: HeuristicStrategy{}.Name()}
	}
}
