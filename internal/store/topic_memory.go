package store

import (
	"sort"
	"strings"
)

// TopicMemory maps topic names to accumulated free-text facts, persisted as
// one JSON object {topic: facts}. Facts only ever accumulate.
type TopicMemory struct {
	file *JSONFile
}

func NewTopicMemory(path string) *TopicMemory {
	return &TopicMemory{file: NewJSONFile(path)}
}

// Commit appends a fact under topic, creating the topic when new.
func (m *TopicMemory) Commit(topic string, fact string) error {
	topic = strings.TrimSpace(topic)
	fact = strings.TrimSpace(fact)

	var memory map[string]string
	return m.file.Update(&memory, func(found bool) (interface{}, error) {
		if !found || memory == nil {
			memory = map[string]string{}
		}
		if existing, ok := memory[topic]; ok && existing != "" {
			memory[topic] = existing + "\n" + fact
		} else {
			memory[topic] = fact
		}
		return memory, nil
	})
}

// Topics returns every known topic name, sorted for stable display.
func (m *TopicMemory) Topics() ([]string, error) {
	var memory map[string]string
	found, err := m.file.Load(&memory)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}

	topics := make([]string, 0, len(memory))
	for topic := range memory {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics, nil
}

// Facts returns the accumulated facts for topic. ok is false when the topic
// has never been committed.
func (m *TopicMemory) Facts(topic string) (string, bool, error) {
	var memory map[string]string
	found, err := m.file.Load(&memory)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	facts, ok := memory[topic]
	return facts, ok, nil
}

func (m *TopicMemory) Count() (int, error) {
	topics, err := m.Topics()
	if err != nil {
		return 0, err
	}
	return len(topics), nil
}
