package rewrite

import (
	"cmp"
	"fmt"
	"slices"

	"lintel/internal/annotate"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// RemoveNode returns tree without target, with the trivia around it
// reconciled. The input tree is never modified.
func RemoveNode(tree *syntax.Tree, target syntax.Ref) (*syntax.Tree, error) {
	return RemoveNodes(tree, []syntax.Ref{target})
}

// RemoveNodes removes several nodes of one tree, one after another. Targets
// that touch or nest are refused: the order of their trivia moves would
// decide where comments end up.
func RemoveNodes(tree *syntax.Tree, targets []syntax.Ref) (*syntax.Tree, error) {
	if len(targets) == 0 {
		return tree, nil
	}
	for _, t := range targets {
		if t.IsZero() || t.Tree() != tree {
			return nil, fmt.Errorf("remove: %w", syntax.ErrForeignRef)
		}
		if t.Parent().IsZero() {
			return nil, fmt.Errorf("remove root: %w", syntax.ErrNotRemovable)
		}
	}
	if err := checkDisjoint(targets); err != nil {
		return nil, err
	}

	tr := annotate.NewTracker()
	paths := make([][]int, len(targets))
	for i, t := range targets {
		paths[i] = slotPath(t)
	}
	ids := make([]annotate.ID, len(targets))
	cur := tree
	for i, p := range paths {
		var err error
		// tagging keeps the shape, so slot paths stay valid
		if cur, ids[i], err = tr.Annotate(cur, follow(cur, p), "target"); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		var err error
		if cur, err = removeOne(tr, cur, id); err != nil {
			return nil, err
		}
	}
	if err := tr.Published(cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func checkDisjoint(targets []syntax.Ref) error {
	sorted := slices.Clone(targets)
	slices.SortFunc(sorted, func(a, b syntax.Ref) int {
		return cmp.Compare(a.FullSpan().Start, b.FullSpan().Start)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].FullSpan().Start <= sorted[i-1].FullSpan().End {
			return ambiguous(sorted[i], "adjacent or nested removal targets")
		}
	}
	return nil
}

func slotPath(r syntax.Ref) []int {
	var path []int
	for cur := r; !cur.Parent().IsZero(); cur = cur.Parent() {
		path = append(path, cur.Slot())
	}
	slices.Reverse(path)
	return path
}

func follow(tree *syntax.Tree, path []int) syntax.Ref {
	cur := tree.Root()
	for _, slot := range path {
		cur = cur.Child(slot)
	}
	return cur
}

// enclosing is the nearest ancestor that is not a list.
func enclosing(t syntax.Ref) syntax.Ref {
	p := t.Parent()
	for p.Kind().IsList() && !p.Parent().IsZero() {
		p = p.Parent()
	}
	return p
}

// checkRemovable refuses targets whose own trivia cannot simply vanish.
func checkRemovable(t syntax.Ref) error {
	var directive bool
	t.Node().Tokens(func(n *syntax.Node) {
		tok, _ := n.Token()
		directive = directive || hasDirective(tok.Leading) || hasDirective(tok.Trailing)
	})
	if directive {
		return ambiguous(t, "preprocessor directive inside the removed code")
	}
	if detachedComment(syntax.LeadingTrivia(t)) {
		return ambiguous(t, "detached comment before the removed code")
	}
	if t.Parent().Is(syntax.KindSeparatedList) {
		for _, sib := range []syntax.Ref{t.NextSibling(), t.PrevSibling()} {
			if sib.TokenKind() == token.Comma {
				tok, _ := sib.Token()
				if token.HasComment(tok.Leading) || token.HasComment(tok.Trailing) || hasDirective(tok.Trailing) {
					return ambiguous(t, "comment on the separator removed with the item")
				}
				break
			}
		}
	}
	return nil
}

// lastItem reports a separated-list item that loses the separator before it.
func lastItem(t syntax.Ref) bool {
	return t.Parent().Is(syntax.KindSeparatedList) &&
		t.NextSibling().TokenKind() != token.Comma &&
		t.PrevSibling().TokenKind() == token.Comma
}

// removeOne removes the node carrying tid. The enclosing node and the token
// after the target are annotated so they can be found in every new tree.
func removeOne(tr *annotate.Tracker, tree *syntax.Tree, tid annotate.ID) (*syntax.Tree, error) {
	t, err := tr.Find(tree, tid)
	if err != nil {
		return nil, err
	}
	if err := checkRemovable(t); err != nil {
		return nil, err
	}
	tree, pid, err := tr.Annotate(tree, enclosing(t), "parent")
	if err != nil {
		return nil, err
	}
	if t, err = tr.Find(tree, tid); err != nil {
		return nil, err
	}
	var nid annotate.ID
	if next := t.NextToken(); !next.IsZero() {
		if tree, nid, err = tr.Annotate(tree, next, "next"); err != nil {
			return nil, err
		}
		if t, err = tr.Find(tree, tid); err != nil {
			return nil, err
		}
	}

	prev := t.PrevToken()
	if lastItem(t) {
		// the separator before the target goes with it
		prev = t.PrevSibling().PrevToken()
	}
	merge := prev.IsZero() || token.HasEOL(syntax.TrailingTrivia(prev))
	leading := slices.Clone(syntax.LeadingTrivia(t))
	captured := slices.Clone(syntax.TrailingTrivia(t))
	var prevText string
	var prevTrailing []token.Trivia
	if !prev.IsZero() {
		tok, _ := prev.Token()
		prevText, prevTrailing = tok.Text, tok.Trailing
	}
	if !merge && token.HasComment(captured) {
		if multiLineBlock(captured) {
			return nil, ambiguous(t, "multi-line block comment after the removed code")
		}
		if openLineComment(captured) {
			return nil, ambiguous(t, "line comment without end of line after the removed code")
		}
	}
	kind := t.Kind()

	if tree, err = tree.Remove(t); err != nil {
		return nil, fmt.Errorf("remove %s: %w", kind, err)
	}
	tr.Forget(tid)

	var next syntax.Ref
	if !nid.IsZero() {
		if next, err = tr.Find(tree, nid); err != nil {
			// the next token went with the target (a list separator)
			tr.Forget(nid)
			nid, next = annotate.ID{}, syntax.Ref{}
		}
	}

	switch {
	case merge:
		tree, err = mergeLines(tree, next, leading, captured)
	case token.HasComment(captured):
		tree, err = rehome(tr, tree, pid, next, prevText, prevTrailing, captured)
	default:
		tree, err = keepApart(tree, next, prevText, prevTrailing, leading, captured)
	}
	if err != nil {
		return nil, err
	}

	if !nid.IsZero() {
		if tree, err = tr.Strip(tree, nid); err != nil {
			return nil, err
		}
	}
	return tr.Strip(tree, pid)
}

// mergeLines: the target started its own line, so the line went with it. A
// leading end-of-line of the next token would now leave a doubled blank
// line. When code followed the target on its line, that code takes over the
// target's indentation.
func mergeLines(tree *syntax.Tree, next syntax.Ref, leading, captured []token.Trivia) (*syntax.Tree, error) {
	if next.IsZero() {
		return tree, nil
	}
	lead := syntax.LeadingTrivia(next)
	switch {
	case !token.HasEOL(captured) && next.TokenKind() != token.EOF:
		lead = append(slices.Clone(indentation(leading)), lead...)
	case len(lead) > 0 && lead[0].Kind == token.TriviaEOL:
		lead = lead[1:]
	default:
		return tree, nil
	}
	return tree.WithLeadingTrivia(next, lead)
}

// rehome moves the comments that trailed the target. They go in front of the
// next token when it already has leading trivia, otherwise to the end of
// the enclosing node.
func rehome(tr *annotate.Tracker, tree *syntax.Tree, pid annotate.ID, next syntax.Ref, prevText string, prevTrailing, captured []token.Trivia) (*syntax.Tree, error) {
	if !next.IsZero() && len(syntax.LeadingTrivia(next)) > 0 {
		moved := joinAfter(endsBlank(prevText, prevTrailing), captured)
		return tree.WithLeadingTrivia(next, append(moved, syntax.LeadingTrivia(next)...))
	}
	p, err := tr.Find(tree, pid)
	if err != nil {
		return nil, err
	}
	trail := syntax.TrailingTrivia(p)
	if token.HasComment(trail) {
		return nil, ambiguous(p, "comment collision at the end of the enclosing node")
	}
	last, _ := p.LastToken().Token()
	at := slices.IndexFunc(trail, func(t token.Trivia) bool { return t.Kind == token.TriviaEOL })
	moved := trimRight(captured)
	var out []token.Trivia
	switch {
	case at >= 0:
		if n := len(moved); n > 0 && moved[n-1].Kind == token.TriviaEOL {
			moved = trimRight(moved[:n-1])
		}
		out = slices.Concat(trail[:at], joinAfter(endsBlank(last.Text, trail[:at]), moved), trail[at:])
	case len(moved) > 0 && moved[len(moved)-1].Kind == token.TriviaEOL:
		out = append(slices.Clone(trail), joinAfter(endsBlank(last.Text, trail), moved)...)
	default:
		// trail is plain whitespace here; the comment goes right after the token
		out = append(joinAfter(endsBlank(last.Text, nil), moved), trail...)
	}
	return tree.WithTrailingTrivia(p, out)
}

// keepApart drops whitespace-only trivia of an inline target, unless the
// tokens around it would then run together.
func keepApart(tree *syntax.Tree, next syntax.Ref, prevText string, prevTrailing, leading, captured []token.Trivia) (*syntax.Tree, error) {
	if next.IsZero() || len(prevTrailing) > 0 || len(syntax.LeadingTrivia(next)) > 0 {
		return tree, nil
	}
	tok, _ := next.Token()
	if !glued(prevText, tok.Text) {
		return tree, nil
	}
	sep := space
	for _, tr := range slices.Concat(captured, leading) {
		if tr.Kind == token.TriviaWhitespace {
			sep = tr
			break
		}
	}
	return tree.WithLeadingTrivia(next, []token.Trivia{sep})
}
