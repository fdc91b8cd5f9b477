package titles

import "testing"

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "underscores to spaces with title case",
			filename: "attention_is_all_you_need.pdf",
			want:     "Attention Is All You Need",
		},
		{
			name:     "leading numeric prefix stripped",
			filename: "12_deep_learning_survey.pdf",
			want:     "Deep Learning Survey",
		},
		{
			name:     "arxiv id prefix stripped",
			filename: "1706.03762v5_attention.pdf",
			want:     "Attention",
		},
		{
			name:     "bare arxiv id keeps id",
			filename: "1706.03762.pdf",
			want:     "1706.03762",
		},
		{
			name:     "mixed case normalized per word",
			filename: "BERT_paper_FINAL.pdf",
			want:     "Bert Paper Final",
		},
		{
			name:     "no extension",
			filename: "my_notes",
			want:     "My Notes",
		},
		{
			name:     "only underscores",
			filename: "_.pdf",
			want:     "Untitled",
		},
		{
			name:     "many underscores",
			filename: "___.pdf",
			want:     "Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFilename(tt.filename); got != tt.want {
				t.Errorf("CleanFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
