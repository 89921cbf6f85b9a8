package dictionary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// minEntryLength is the shortest entry kept in an Index
const minEntryLength = 2

// Node is one letter step in the trie
type Node struct {
	children [26]*Node
	terminal bool
}

// Child returns the node reached by appending r, or nil
func (n *Node) Child(r rune) *Node {
	if n == nil || !model.IsLetter(r) {
		return nil
	}
	return n.children[r-'A']
}

// IsWord reports whether the path to n spells a complete entry
func (n *Node) IsWord() bool {
	return n != nil && n.terminal
}

// Index is an immutable prefix tree over the word list
type Index struct {
	root  *Node
	count int
}

// NewIndex builds an Index from words. Entries are trimmed and upper-cased;
// entries with characters outside A-Z, or shorter than two letters, are
// skipped.
func NewIndex(words []string) *Index {
	idx := &Index{root: &Node{}}
	for _, w := range words {
		idx.insert(w)
	}
	return idx
}

// Load reads a newline-delimited word list
func Load(r io.Reader) (*Index, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDictionary, err)
	}
	return fromWords(words)
}

// LoadJSON reads a word list encoded as a JSON array of strings
func LoadJSON(r io.Reader) (*Index, error) {
	var words []string
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDictionary, err)
	}
	return fromWords(words)
}

func fromWords(words []string) (*Index, error) {
	idx := NewIndex(words)
	if idx.Len() == 0 {
		return nil, fmt.Errorf("%w: no valid entries", model.ErrDictionary)
	}
	return idx, nil
}

// normalize returns the canonical form of an entry and whether it is usable
func normalize(word string) (string, bool) {
	word = strings.ToUpper(strings.TrimSpace(word))
	if len(word) < minEntryLength {
		return "", false
	}
	for _, r := range word {
		if !model.IsLetter(r) {
			return "", false
		}
	}
	return word, true
}

func (idx *Index) insert(word string) {
	word, ok := normalize(word)
	if !ok {
		return
	}
	node := idx.root
	for _, r := range word {
		i := r - 'A'
		if node.children[i] == nil {
			node.children[i] = &Node{}
		}
		node = node.children[i]
	}
	if !node.terminal {
		node.terminal = true
		idx.count++
	}
}

func (idx *Index) walk(s string) *Node {
	node := idx.root
	for _, r := range strings.ToUpper(s) {
		node = node.Child(r)
		if node == nil {
			return nil
		}
	}
	return node
}

// Root returns the empty-prefix node for incremental traversal
func (idx *Index) Root() *Node {
	return idx.root
}

// IsWord reports whether s is an entry
func (idx *Index) IsWord(s string) bool {
	return idx.walk(s).IsWord()
}

// HasPrefix reports whether some entry begins with s
func (idx *Index) HasPrefix(s string) bool {
	return idx.walk(s) != nil
}

// Len returns the number of distinct entries
func (idx *Index) Len() int {
	return idx.count
}

// Words returns every entry in alphabetical order
func (idx *Index) Words() []string {
	words := make([]string, 0, idx.count)
	var buf []byte
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.terminal {
			words = append(words, string(buf))
		}
		for i, child := range n.children {
			if child == nil {
				continue
			}
			buf = append(buf, byte('A'+i))
			visit(child)
			buf = buf[:len(buf)-1]
		}
	}
	visit(idx.root)
	return words
}
