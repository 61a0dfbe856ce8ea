// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/mc-aweaver/techradar-1/pkg/slice"
)

// LetterIndex is an alphabet-style view over a topic list.
type LetterIndex struct {
	groups []slice.Group[string, *Topic]
}

// GroupByLetter buckets topics by the uppercased first rune of their name.
//
// Groups appear in the order their letter is first encountered in topics, and
// each group keeps the input order of its members. A topic with an empty name
// fails the whole call with [ErrInvalidTopic].
func GroupByLetter(topics []*Topic) (*LetterIndex, error) {
	groups, err := slice.GroupBy(topics, letterOf)
	if err != nil {
		return nil, err
	}

	return &LetterIndex{groups: groups}, nil
}

// ForEachLetter calls fn once per group, in index order.
func (index *LetterIndex) ForEachLetter(fn func(letter string, topics []*Topic)) {
	for _, group := range index.groups {
		fn(group.Key, group.Items)
	}
}

// Letters returns the group keys in index order.
func (index *LetterIndex) Letters() []string {
	return slice.Map(index.groups, func(group slice.Group[string, *Topic]) string {
		return group.Key
	})
}

// Len reports the number of groups.
func (index *LetterIndex) Len() int {
	return len(index.groups)
}

type letterGroup struct {
	Letter string   `json:"letter"`
	Topics []*Topic `json:"topics"`
}

// MarshalJSON renders the index as an ordered array, since a JSON object
// would not keep the group order.
func (index *LetterIndex) MarshalJSON() ([]byte, error) {
	out := make([]letterGroup, 0, len(index.groups))
	index.ForEachLetter(func(letter string, topics []*Topic) {
		out = append(out, letterGroup{Letter: letter, Topics: topics})
	})
	return json.Marshal(out)
}

func letterOf(topic *Topic) (string, error) {
	if topic == nil || topic.Name == "" {
		return "", ErrInvalidTopic
	}

	first, _ := utf8.DecodeRuneInString(topic.Name)
	return strings.ToUpper(string(first)), nil
}
