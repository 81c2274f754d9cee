// Package plate detects likely duplicate license plate reads and proposes
// corrections for them.
//
// Detections arrive sorted by timestamp. The matcher pairs each detection with
// a bounded number of successors that fall inside the time window, scores
// each pair with a matching-block similarity ratio, and emits the pairs that
// meet the threshold. The resolver turns each match into a single correction
// by comparing plate lengths.
//
// Everything here is pure and in-memory. Persistence, ingestion, and
// reporting live in their own packages and talk to this one through plain
// values and the Observer hook.
package plate
