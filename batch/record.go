package batch

import "encoding/json"

// FileRecord describes a single file as seen by the grouping engine.
// Name is a display identifier and is not required to be unique.
// LastModified is carried through to the output untouched; the engine
// never parses or compares it.
type FileRecord struct {
	Name         string `json:"name"`
	SizeBytes    int64  `json:"size_bytes"`
	LastModified string `json:"last_modified"`
}

// Group is an ordered collection of file records with a running byte total.
// A group is owned by the strategy that created it until the strategy
// returns, after which it is treated as closed.
type Group struct {
	files          []FileRecord
	totalSizeBytes int64
}

// NewGroup returns a group seeded with the given records.
func NewGroup(files ...FileRecord) *Group {
	g := &Group{}
	for _, f := range files {
		g.Add(f)
	}
	return g
}

// Add appends a record to the group and bumps the running total.
func (g *Group) Add(f FileRecord) {
	g.files = append(g.files, f)
	g.totalSizeBytes += f.SizeBytes
}

// Files returns the group's records in insertion order.
func (g *Group) Files() []FileRecord {
	return g.files
}

// Len returns the number of records in the group.
func (g *Group) Len() int {
	return len(g.files)
}

// TotalSizeBytes returns the running byte total maintained by Add.
func (g *Group) TotalSizeBytes() int64 {
	return g.totalSizeBytes
}

// Remaining returns how many bytes the group can still accept under the
// given capacity. The result is negative if the group already exceeds it.
func (g *Group) Remaining(maxGroupSizeBytes int64) int64 {
	return maxGroupSizeBytes - g.totalSizeBytes
}

// RecomputeSize sums the member sizes from scratch, independent of the
// running total. The validator uses this to catch corrupted totals.
func (g *Group) RecomputeSize() int64 {
	var total int64
	for _, f := range g.files {
		total += f.SizeBytes
	}
	return total
}

// On disk a group is a bare JSON array of its records, so the descriptor
// files stay readable by anything that understands the record shape.

func (g *Group) MarshalJSON() ([]byte, error) {
	if g.files == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g.files)
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var files []FileRecord
	if err := json.Unmarshal(data, &files); err != nil {
		return err
	}
	g.files = files
	g.totalSizeBytes = 0
	for _, f := range files {
		g.totalSizeBytes += f.SizeBytes
	}
	return nil
}
