package pipeline

import (
	"github.com/montanaflynn/stats"

	"rrna16-core/corpus"
	"rrna16-core/genome"
	"rrna16/pkg/api"
)

// Summarize builds the run summary from per-genome results and the written
// corpus entries.
func Summarize(results []Result, written []corpus.Entry) api.SummaryV1 {
	s := api.SummaryV1{
		Version:      1,
		GenomesTotal: len(results),
		ErrorsByKind: map[string]int{},
		Genomes:      make([]api.GenomeV1, 0, len(results)),
	}
	for _, k := range genome.Kinds {
		s.ErrorsByKind[k.Error()] = 0
	}

	for _, r := range results {
		row := api.GenomeV1{
			ID:         r.Genome.ID,
			Format:     r.Genome.Kind.String(),
			Path:       r.Genome.Paths()[0],
			Selected:   r.Stats.Selected,
			Duplicates: r.Stats.Duplicates,
			Cached:     r.Cached,
		}
		for k, n := range r.ErrCounts {
			s.ErrorsByKind[k] += n
			row.Skipped += n
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
			s.GenomesFailed++
			s.ErrorsByKind[KindName(r.Err)]++
		} else {
			row.Written = len(r.Entries)
			s.GenomesProcessed++
			if len(r.Entries) == 0 {
				s.GenomesWithout16S++
			}
		}
		if r.Cached {
			s.GenomesCached++
		}
		s.FeaturesSelected += r.Stats.Selected
		s.DuplicatesSkipped += r.Stats.Duplicates
		s.Genomes = append(s.Genomes, row)
	}

	s.SequencesWritten = len(written)
	s.Length = lengthStats(written)
	return s
}

func lengthStats(list []corpus.Entry) api.LengthStatsV1 {
	if len(list) == 0 {
		return api.LengthStatsV1{}
	}
	data := make(stats.Float64Data, len(list))
	for i, e := range list {
		data[i] = float64(len(e.Bases))
	}
	var ls api.LengthStatsV1
	ls.Min, _ = data.Min()
	ls.Max, _ = data.Max()
	ls.Mean, _ = data.Mean()
	ls.Median, _ = data.Median()
	return ls
}
