package models

type (
	// FileChange is one changed file with its full before/after content.
	// Either side may be empty for adds and deletes.
	FileChange struct {
		Path   string
		Before string
		After  string
	}

	// CommitInfo is the minimal commit metadata shown in diff summaries.
	CommitInfo struct {
		Hash    string
		Message string
		Author  string
	}

	// DiffAnalysisResult aggregates the analysis of a set of local changes.
	// FilesChanged always equals len(FileList); LinesAdded/LinesDeleted are
	// sums over the per-file diffs.
	DiffAnalysisResult struct {
		FilesChanged int
		LinesAdded   int
		LinesDeleted int
		FileList     []string
		DiffContent  string
		BranchName   string
		Commits      []CommitInfo
	}
)

// CommitMeta is one commit as consumed by the suggestion engine.
type CommitMeta struct {
	Hash         string
	Message      string
	Author       string
	Timestamp    int64
	FilesChanged []string
}
