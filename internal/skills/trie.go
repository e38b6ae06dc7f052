// Package skills provides the skill index used to autocomplete and resolve skill names.
package skills

import (
	"slices"
	"strings"
)

// trieNode is a single character position in the prefix tree.
type trieNode struct {
	children    map[rune]*trieNode
	isEndOfWord bool
	// value is the catalog's display form, set only on terminal nodes
	value string
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie is a prefix tree keyed by lower-cased runes.
// It is not safe for concurrent mutation; build it fully before sharing it.
type Trie struct {
	root *trieNode
	size int
}

// NewTrie returns an empty trie whose root represents the empty prefix.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert adds word to the trie. Keys are case-insensitive: the first display form
// inserted for a key is kept. Returns false for empty words and duplicates.
func (t *Trie) Insert(word string) bool {
	if word == "" {
		return false
	}

	node := t.root
	for _, r := range strings.ToLower(word) {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}

	if node.isEndOfWord {
		return false
	}
	node.isEndOfWord = true
	node.value = word
	t.size++
	return true
}

// Len returns the number of distinct words in the trie.
func (t *Trie) Len() int {
	return t.size
}

// Get returns the display form stored for word, matched case-insensitively.
func (t *Trie) Get(word string) (string, bool) {
	node := t.walk(word)
	if node == nil || !node.isEndOfWord {
		return "", false
	}
	return node.value, true
}

// Search returns every word starting with prefix, in lexicographic order of their
// lower-cased keys. An unknown prefix yields an empty slice; the empty prefix yields
// the whole trie.
func (t *Trie) Search(prefix string) []string {
	node := t.walk(prefix)
	if node == nil {
		return []string{}
	}
	return collectWords(node)
}

// walk follows prefix from the root and returns the reached node, or nil.
func (t *Trie) walk(prefix string) *trieNode {
	node := t.root
	for _, r := range strings.ToLower(prefix) {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// collectWords gathers all terminal values below start using an explicit stack,
// so depth is bounded by heap rather than the call stack.
func collectWords(start *trieNode) []string {
	words := make([]string, 0)
	stack := []*trieNode{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.isEndOfWord {
			words = append(words, node.value)
		}

		keys := make([]rune, 0, len(node.children))
		for r := range node.children {
			keys = append(keys, r)
		}
		slices.Sort(keys)

		// Push in reverse so the smallest rune is popped first.
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, node.children[keys[i]])
		}
	}

	return words
}
