// Package pipeline implements the Markdown-to-text conversion pipeline.
//
// A conversion is an ordered list of steps. Each step consumes the previous
// step's output and removes one family of Markdown syntax:
//   - Code first (fenced blocks, multi-line HTML comments, inline code), so
//     markers inside code never reach later steps
//   - Headers, emphasis, footnotes and links next
//   - Line-oriented markers (rules, lists, table separators, quotes)
//   - HTML tags last, then escapes and whitespace cleanup
//
// Every fragment a step removes can be kept in a Recorder, grouped by
// Category, and rendered as a plain-text log.
//
// Patterns are bounded and never cross a line break, and multi-line blocks
// are handled by a line scanner (BlockStripper), so the cost of a
// conversion stays linear in the size of the input.
package pipeline
