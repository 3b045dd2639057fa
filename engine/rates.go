/*
rates.go - Effective-dated rate resolution

PURPOSE:
  Answers "what rates was this job paying on date X?". A job carries its
  current RateSet plus a history of dated changes; shifts logged before a
  change keep whichever rates were in force on their date, which is what
  makes retroactive pay recomputation safe.

CONTRACT:
  - Empty history: the current rates apply to every date.
  - Otherwise: the most recent change with EffectiveFrom <= date wins.
  - All changes in the future: fall back to the current rates.

  History length is small (a handful of pay rises per job), so the
  per-call sort is fine.
*/
package engine

import "sort"

// ResolveRates returns the rate set in force for a job on a given date.
// Pure function; the job's history is never mutated.
func ResolveRates(job JobConfig, on Date) RateSet {
	if len(job.RateHistory) == 0 {
		return job.Rates
	}

	history := make([]RateChange, len(job.RateHistory))
	copy(history, job.RateHistory)
	sort.Slice(history, func(i, j int) bool {
		return history[j].EffectiveFrom.Before(history[i].EffectiveFrom)
	})

	for _, change := range history {
		if change.EffectiveFrom.BeforeOrEqual(on) {
			return change.Rates
		}
	}
	return job.Rates
}
