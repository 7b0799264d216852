package util

import (
	"fmt"
	"sort"
	"sync"
)

// EnumSet assigns dense indices to strings in insertion order.
// Exported fields let the set travel through gob with its owning model.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.Index) {
		panic("Unknown index requested: " + fmt.Sprintf("%v of %v", index, len(e.Index)))
	}
	return e.Index[index]
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Sorted returns the values in lexicographic order.
func (e *EnumSet) Sorted() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	retval := append([]string(nil), e.Index...)
	sort.Strings(retval)
	return retval
}

func NewEnumSet(capacity int) *EnumSet {
	return &EnumSet{
		Enum:  make(map[string]int, capacity),
		Index: make([]string, 0, capacity),
	}
}
