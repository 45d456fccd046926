package annotate

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"lintel/internal/syntax"
)

// ID identifies one annotation. The zero ID is never issued.
type ID struct {
	tag   syntax.Tag
	label string
}

func (id ID) IsZero() bool    { return id.tag == 0 }
func (id ID) Label() string   { return id.label }
func (id ID) String() string  { return fmt.Sprintf("%s#%d", id.label, id.tag) }
func (id ID) Tag() syntax.Tag { return id.tag }

// AnnotationLostError means no node of the given tree carries the annotation:
// either the node was removed or the tree is not of the annotated lineage.
type AnnotationLostError struct {
	ID   ID
	Path string
}

func (e *AnnotationLostError) Error() string {
	return fmt.Sprintf("annotation %s lost in %s", e.ID, e.Path)
}

// Tracker issues annotations for one fix session and remembers which are
// still live so that Published can catch leaks.
type Tracker struct {
	mu   sync.Mutex
	live map[syntax.Tag]ID
}

func NewTracker() *Tracker {
	return &Tracker{live: make(map[syntax.Tag]ID)}
}

// Annotate returns a tree where r carries a fresh annotation.
func (t *Tracker) Annotate(tree *syntax.Tree, r syntax.Ref, label string) (*syntax.Tree, ID, error) {
	id := ID{tag: syntax.NewTag(), label: label}
	out, err := tree.AddTag(r, id.tag)
	if err != nil {
		return nil, ID{}, fmt.Errorf("annotate %s: %w", r.Kind(), err)
	}
	t.mu.Lock()
	t.live[id.tag] = id
	t.mu.Unlock()
	return out, id, nil
}

// Find returns the node of tree carrying id.
func (t *Tracker) Find(tree *syntax.Tree, id ID) (syntax.Ref, error) {
	r, ok := tree.FindTag(id.tag)
	if !ok {
		return syntax.Ref{}, &AnnotationLostError{ID: id, Path: tree.Path()}
	}
	return r, nil
}

// Strip removes id from tree. The annotation is no longer tracked afterwards,
// even when it was already lost.
func (t *Tracker) Strip(tree *syntax.Tree, id ID) (*syntax.Tree, error) {
	t.mu.Lock()
	delete(t.live, id.tag)
	t.mu.Unlock()
	out, ok := tree.RemoveTag(id.tag)
	if !ok {
		return tree, &AnnotationLostError{ID: id, Path: tree.Path()}
	}
	return out, nil
}

// Forget stops tracking id without touching any tree. Used when the
// annotated node was deleted on purpose.
func (t *Tracker) Forget(id ID) {
	t.mu.Lock()
	delete(t.live, id.tag)
	t.mu.Unlock()
}

// Live returns the annotations issued and not yet stripped.
func (t *Tracker) Live() []ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ID, 0, len(t.live))
	for _, id := range t.live {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b ID) int { return cmp.Compare(a.tag, b.tag) })
	return out
}

// Published reports an error when tree still carries annotations issued by t.
func (t *Tracker) Published(tree *syntax.Tree) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var leaked []string
	for _, tag := range tree.Tags() {
		if id, ok := t.live[tag]; ok {
			leaked = append(leaked, id.String())
		}
	}
	if len(leaked) > 0 {
		return fmt.Errorf("tree %s still carries annotations %v", tree.Path(), leaked)
	}
	return nil
}

