package commonModels

import "time"

// Metadata travels with every indexed point and comes back on every hit.
type Metadata struct {
	Domain string `json:"domain"`
	Source string `json:"source"`
	Key    string `json:"key"`
}

// Document is one flattened knowledge-base entry. Ids are assigned 1..N per ingestion run.
type Document struct {
	Id       uint64   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

type IndexedPoint struct {
	Id       uint64
	Vector   []float32
	Content  string
	Metadata Metadata
}

type SearchResult struct {
	Id         uint64   `json:"id"`
	Content    string   `json:"content"`
	Metadata   Metadata `json:"metadata"`
	Similarity float32  `json:"similarity"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// FileType is the lowercased extension, dot included.
type FileType string

const (
	TXT  FileType = ".txt"
	CSV  FileType = ".csv"
	JSON FileType = ".json"
	PDF  FileType = ".pdf"
	XLSX FileType = ".xlsx"
	XLS  FileType = ".xls"
	DOCX FileType = ".docx"
	ODT  FileType = ".odt"
	RTF  FileType = ".rtf"
)

// UploadedFile is a processed upload. For PDF reports Content holds the overall
// summary and RawContent the extracted text.
type UploadedFile struct {
	Name           string    `json:"filename"`
	Type           FileType  `json:"file_type"`
	Content        string    `json:"content"`
	SizeBytes      int64     `json:"size_bytes"`
	RawContent     string    `json:"raw_content,omitempty"`
	ChunkSummaries []string  `json:"chunk_summaries,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

type ChunkSummary struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Failed bool   `json:"failed,omitempty"`
}

type SummaryResult struct {
	OverallSummary string         `json:"overall_summary"`
	ChunkSummaries []ChunkSummary `json:"chunk_summaries"`
}

// Texts returns the chunk summaries in index order.
func (r SummaryResult) Texts() []string {
	out := make([]string, len(r.ChunkSummaries))
	for i, c := range r.ChunkSummaries {
		out[i] = c.Text
	}
	return out
}
