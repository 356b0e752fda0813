// Package reembed regenerates note embeddings in bulk.
//
// Switching embedding models leaves the stored vectors incompatible with
// new queries. The Reembedder walks every note in a store, re-embeds its
// content in batches on a worker pool, normalizes the vectors, and writes
// them back. Failed batches are retried with exponential backoff and
// progress is reported to a writer.
package reembed
