// Package writers turns run results into serialized outputs.
//
// Design:
//   - Writers own all presentation dispatch (text/JSON/JSONL summaries).
//   - Core stays domain-only; pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
