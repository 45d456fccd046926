// Package annotate tags nodes so they can be found again after the tree has
// been rebuilt by edits elsewhere. A tag is a pure lookup key: it owns nothing
// and must be stripped before the tree is published.
package annotate
