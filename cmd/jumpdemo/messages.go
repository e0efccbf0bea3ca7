package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/jumpscroll"
)

type message struct {
	id     int64
	author string
	body   string
}

var (
	authors = []string{"ana", "bo", "chidi", "dara", "eli", "fen"}
	words   = strings.Fields("the jump lands on the reply while older items slide out and newer ones slide in from below the fold with a short settle at the end")
)

// messageStore is the demo data set. Ids are never reused.
type messageStore struct {
	rng    *rand.Rand
	items  []message
	nextID int64
}

func newMessageStore(count int, seed uint64) *messageStore {
	s := &messageStore{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	for range count {
		s.items = append(s.items, s.generate())
	}
	return s
}

func (s *messageStore) generate() message {
	s.nextID++
	n := 3 + s.rng.IntN(25)
	body := make([]string, n)
	for i := range body {
		body[i] = words[s.rng.IntN(len(words))]
	}
	return message{
		id:     s.nextID,
		author: authors[s.rng.IntN(len(authors))],
		body:   strings.Join(body, " "),
	}
}

func (s *messageStore) Len() int {
	return len(s.items)
}

func (s *messageStore) ID(index int) jumpscroll.Identity {
	if index < 0 || index >= len(s.items) {
		return jumpscroll.Identity(-1)
	}
	return jumpscroll.Identity(s.items[index].id)
}

func (s *messageStore) Insert(index int) {
	index = min(max(index, 0), len(s.items))
	s.items = append(s.items[:index], append([]message{s.generate()}, s.items[index:]...)...)
}

func (s *messageStore) Remove(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return true
}

func (s *messageStore) Edit(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items[index].body += " (edited)"
	return true
}

// Random returns an index at least minDistance away from from, when the
// store is large enough.
func (s *messageStore) Random(from, minDistance int) int {
	if len(s.items) == 0 {
		return -1
	}
	for range 8 {
		index := s.rng.IntN(len(s.items))
		if abs(index-from) >= minDistance {
			return index
		}
	}
	return s.rng.IntN(len(s.items))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// messageItem renders one message and dims itself while it slides out.
type messageItem struct {
	*tview.TextItem

	id    int64
	style tcell.Style
}

func newMessageItem(m message, selected bool) *messageItem {
	text := fmt.Sprintf("#%d %s: %s", m.id, m.author, m.body)
	item := &messageItem{
		TextItem: tview.NewTextItem(text),
		id:       m.id,
		style:    tcell.StyleDefault,
	}
	if selected {
		item.style = item.style.Reverse(true)
	}
	item.SetTextStyle(item.style)
	return item
}

func (m *messageItem) StableID() (jumpscroll.Identity, bool) {
	return jumpscroll.Identity(m.id), true
}

func (m *messageItem) SetAnimating(running, departing bool) {
	if running && departing {
		m.SetTextStyle(m.style.Dim(true))
		return
	}
	m.SetTextStyle(m.style)
}

var (
	_ jumpscroll.Identified = &messageItem{}
	_ jumpscroll.Animatable = &messageItem{}
)
