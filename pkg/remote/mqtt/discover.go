package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"
)

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// Discover collects retained meta of running bridges until timeout.
func Discover(ctx context.Context, t Transport, timeout time.Duration) ([]Meta, error) {
	metaCh, doneCh := make(chan Meta, 16), make(chan struct{})
	defer close(doneCh)
	sub, err := t.Subscribe("+/"+TopicMeta, func(topic string, payload []byte) {
		if len(payload) == 0 {
			return
		}
		id, _, ok := SplitTopic(topic)
		if !ok {
			return
		}
		var meta Meta
		if err := json.Unmarshal(payload, &meta); err != nil {
			glog.Warningf("invalid meta on %q: %v", topic, err)
			return
		}
		meta.ID = id
		select {
		case metaCh <- meta:
		case <-doneCh:
		}
	})
	if err != nil {
		return nil, err
	}
	defer sub.Close()

	if timeout <= 0 {
		timeout = DefaultDiscoverTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	var found []Meta
	for {
		select {
		case meta := <-metaCh:
			found = append(found, meta)
		case <-timer.C:
			return found, nil
		case <-ctx.Done():
			return found, ctx.Err()
		}
	}
}
