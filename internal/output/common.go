package output

// Summary formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// GenomeTSVHeader is the header row of the per-genome table in text summaries.
const GenomeTSVHeader = "genome_id\tformat\tselected\tduplicates\twritten\tskipped\tcached\terror"
