package vision

import (
	"context"
	"io"
)

// CaptionPrompt is the shared prompt used by all caption adapters.
const CaptionPrompt = `You are an assistant to the regional public works administration.
Look at this photo of an urban public service. Describe briefly (two sentences
at most) which problem or service is visible in the image, for example
accumulated debris, a clogged storm drain, or a tree that needs pruning.`

// Captioner describes an image in a short natural-language sentence. Its
// output is stored as plain text in a record's notes.
type Captioner interface {
	Describe(ctx context.Context, r io.Reader, mimeType string) (string, error)
}
