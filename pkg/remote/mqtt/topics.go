package mqtt

import "strings"

// Topic suffixes under a controller ID.
const (
	TopicCmd  = "cmd"
	TopicMsg  = "msg"
	TopicMeta = "meta"
)

// Topics are the topics of one controller, relative to the topic prefix.
type Topics struct {
	Cmd  string
	Msg  string
	Meta string
}

// TopicsFor returns the topics of controller id.
func TopicsFor(id string) Topics {
	return Topics{
		Cmd:  id + "/" + TopicCmd,
		Msg:  id + "/" + TopicMsg,
		Meta: id + "/" + TopicMeta,
	}
}

// SplitTopic extracts the controller id and the suffix from a topic.
func SplitTopic(topic string) (id, suffix string, ok bool) {
	pos := strings.LastIndex(topic, "/")
	if pos <= 0 || pos+1 >= len(topic) {
		return "", "", false
	}
	return topic[:pos], topic[pos+1:], true
}
