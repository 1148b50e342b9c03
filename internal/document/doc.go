// Package document defines the corpus data model shared by all pipeline
// stages: source documents, atomic content units, and content fingerprints.
//
// A Document is an immutable snapshot of one markdown file. After
// normalization and structural compression the document body is segmented
// into Units, the atomic pieces the deduplicator, lexical compressor, and
// chunker operate on. Units never split mid-fence or mid-paragraph, which is
// what keeps every later stage boundary safe.
package document
