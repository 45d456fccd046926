// Package rule defines the contract between analysis rules and the engine.
//
// A rule is a Descriptor: metadata plus one or more Actions, each declaring
// the node kinds or symbol kinds it wants to see. Rules are registered
// explicitly in a Registry; the dispatcher walks every tree once and calls
// matching actions with a Context through which findings are reported.
package rule
