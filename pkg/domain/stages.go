package domain

// StageCount is the fixed length of the processing pipeline shown to users.
const StageCount = 5

// Stage is one step of the fixed pipeline. The stages are cosmetic progress
// signaling only and carry no information about real remote progress.
type Stage struct {
	Ordinal     int
	Title       string
	Description string
}

var stages = []Stage{
	{Ordinal: 1, Title: "Analyzing", Description: "Scanning file structure and entropy"},
	{Ordinal: 2, Title: "Preprocessing", Description: "Normalizing data blocks"},
	{Ordinal: 3, Title: "Compressing", Description: "Encoding with the SkyCodec pipeline"},
	{Ordinal: 4, Title: "Optimizing", Description: "Packing the compressed stream"},
	{Ordinal: 5, Title: "Finalizing", Description: "Verifying and sealing the artifact"},
}

// Stages returns the shared, read-only pipeline definition. Callers must not
// mutate the returned slice.
func Stages() []Stage {
	return stages
}
