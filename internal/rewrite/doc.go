// Package rewrite deletes nodes from a tree without losing or inventing
// formatting.
//
// Removing a node also removes its trivia. Before that happens RemoveNode
// decides what the surrounding code keeps: when the node sat on its own
// line (merge case) the line disappears with it; when it shared a line with
// the code before it (inline case) comments trailing it move to the next
// token or to the enclosing node. Cases the policy cannot decide safely are
// refused with ErrAmbiguous and the input tree stays as it was.
package rewrite
