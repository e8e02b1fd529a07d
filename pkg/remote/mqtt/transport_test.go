package mqtt

import (
	"io"
	"sync"
)

type published struct {
	topic   string
	payload []byte
	retain  bool
}

type memSub struct {
	t       *memTransport
	topic   string
	handler Handler
}

func (s *memSub) Close() error {
	s.t.lock.Lock()
	defer s.t.lock.Unlock()
	subs := s.t.subs[:0]
	for _, sub := range s.t.subs {
		if sub != s {
			subs = append(subs, sub)
		}
	}
	s.t.subs = subs
	return nil
}

// memTransport delivers published messages synchronously to matching
// subscriptions and keeps retained messages.
type memTransport struct {
	lock      sync.Mutex
	subs      []*memSub
	retained  map[string][]byte
	published []published
}

func newMemTransport() *memTransport {
	return &memTransport{retained: make(map[string][]byte)}
}

func (t *memTransport) Subscribe(topic string, handler Handler) (io.Closer, error) {
	sub := &memSub{t: t, topic: topic, handler: handler}
	t.lock.Lock()
	t.subs = append(t.subs, sub)
	retained := make(map[string][]byte)
	for key, payload := range t.retained {
		if MatchTopic(key, topic) {
			retained[key] = payload
		}
	}
	t.lock.Unlock()
	for key, payload := range retained {
		handler(key, payload)
	}
	return sub, nil
}

func (t *memTransport) Publish(topic string, payload []byte, retain bool) error {
	var handlers []Handler
	t.lock.Lock()
	t.published = append(t.published, published{topic: topic, payload: payload, retain: retain})
	if retain {
		if len(payload) == 0 {
			delete(t.retained, topic)
		} else {
			t.retained[topic] = payload
		}
	}
	for _, sub := range t.subs {
		if MatchTopic(topic, sub.topic) {
			handlers = append(handlers, sub.handler)
		}
	}
	t.lock.Unlock()
	for _, h := range handlers {
		h(topic, payload)
	}
	return nil
}

func (t *memTransport) retainedPayload(topic string) ([]byte, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	payload, ok := t.retained[topic]
	return payload, ok
}

func (t *memTransport) subscribed(topic string) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, sub := range t.subs {
		if sub.topic == topic {
			return true
		}
	}
	return false
}
