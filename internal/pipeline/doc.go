// Package pipeline runs the per-genome extraction (read annotation, select
// 16S features, slice sequences) over a bounded worker pool and merges the
// per-genome results in genome-ID order, so output does not depend on the
// number of workers.
//
// Bare FASTA genomes go through an Annotator first; fakes satisfy it in tests.
package pipeline
