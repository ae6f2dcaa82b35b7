package history

import (
	"slices"

	"go.uber.org/zap"

	"storynav/common"
)

// Stack is navigation path: ids of visited pages, most recent last. Stack
// never holds the same id twice in a row.
type Stack struct {
	log  *zap.Logger
	bag  Bag
	path []string
}

func NewStack(bag Bag, log *zap.Logger) *Stack {
	if log == nil {
		log = zap.NewNop()
	}
	if bag == nil {
		bag = NewMemoryBag()
	}
	return &Stack{log: log.Named("history"), bag: bag}
}

// Restore reads persisted navigation path, consecutive duplicates are
// collapsed.
func (s *Stack) Restore() error {
	path, ok, err := Get[[]string](s.bag, NavigationPathKey)
	if err != nil {
		return err
	}
	s.path = s.path[:0]
	if ok {
		s.path = slices.Compact(path)
	}
	return nil
}

// Path returns current navigation path, caller must not modify it.
func (s *Stack) Path() []string {
	return s.path
}

func (s *Stack) Len() int {
	return len(s.path)
}

func (s *Stack) Top() (string, bool) {
	if len(s.path) == 0 {
		return "", false
	}
	return s.path[len(s.path)-1], true
}

// Push records forward navigation unless id is on top already.
func (s *Stack) Push(id string) bool {
	if top, ok := s.Top(); ok && top == id {
		return false
	}
	s.path = append(s.path, id)
	return true
}

// Pop removes the most recent entry.
func (s *Stack) Pop() (string, bool) {
	top, ok := s.Top()
	if ok {
		s.path = s.path[:len(s.path)-1]
	}
	return top, ok
}

// Update changes path for navigation to id in given direction and persists
// it: backward navigation pops the page we are leaving, forward one pushes
// the target.
func (s *Stack) Update(id string, dir common.Direction) error {
	changed := false
	switch dir {
	case common.DirectionPrevious:
		_, changed = s.Pop()
	case common.DirectionNext:
		changed = s.Push(id)
	}
	if !changed {
		return nil
	}
	s.log.Debug("Navigation path updated", zap.Stringer("direction", dir), zap.Strings("path", s.path))
	return s.Save()
}

// Replace sets the whole path and persists it.
func (s *Stack) Replace(path []string) error {
	s.path = slices.Compact(slices.Clone(path))
	return s.Save()
}

// Save persists current path.
func (s *Stack) Save() error {
	path := s.path
	if path == nil {
		path = []string{}
	}
	return Put(s.bag, NavigationPathKey, path)
}

// AttachmentPage returns page which had its attachment opened when state was
// saved.
func (s *Stack) AttachmentPage() (string, error) {
	id, _, err := Get[string](s.bag, AttachmentPageKey)
	return id, err
}

// SetAttachmentPage remembers page with opened attachment, empty id clears
// it.
func (s *Stack) SetAttachmentPage(id string) error {
	return Put(s.bag, AttachmentPageKey, id)
}
