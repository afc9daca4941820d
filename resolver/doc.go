// Package resolver provides record reference resolution over a decoded
// model graph.
//
// Records refer to each other by id (#n). This package follows those
// references through a [Source], unwrapping typed value wrappers on the way,
// and offers a cycle-safe depth-first walk over the reference graph.
//
// # Basic Usage
//
//	res := resolver.New(model)
//	rec, ok := res.Follow(space, 6) // the space's representation
//
// # Graph Walks
//
// [Resolver.Visit] traverses every record reachable through reference
// attributes, depth-first, visiting each record at most once. The callback
// prunes the walk by returning false. The maximum depth is configurable:
//
//	res := resolver.New(model, resolver.WithMaxDepth(50))
//
// Dangling references are never an error: lookups report false and walks
// skip them, matching the best-effort posture of the rest of the pipeline.
package resolver
