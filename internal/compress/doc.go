// Package compress implements the document rewrite stages: whitespace and
// emoji normalization, structural notation, and the level-gated lexical
// rule ladder.
//
// # Stages
//
// Normalizer cleans raw markdown per document. StructureCompressor rewrites
// headings, lists, checkboxes, and fences into the condensed line notation.
// LexicalCompressor applies phrase-level rewrites across the whole corpus,
// gated by Level.
//
// All stages are pure: equal input and configuration yield equal output.
// Code fence interiors are never modified by any stage.
//
// # Levels
//
// Each level includes everything below it:
//
//	low      whitespace and emoji cleanup only
//	medium   structural notation, deduplication, fluff removal
//	high     sentence-level compression
//	extreme  article removal, abbreviations, symbolic notation
package compress
