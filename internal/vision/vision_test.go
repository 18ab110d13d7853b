package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Debris piled on the sidewalk.", "Debris piled on the sidewalk."},
		{"surrounding whitespace", "  \nA clogged storm drain.\n\n", "A clogged storm drain."},
		{"preamble", "Here is the description:\nOvergrown tree branches over the road.", "Overgrown tree branches over the road."},
		{"two lines", "A pothole in the asphalt.\nIt needs filling.", "A pothole in the asphalt. It needs filling."},
		{"quoted", `"Broken street light."`, "Broken street light."},
		{"preamble without colon is kept", "Here the drain is blocked by leaves.", "Here the drain is blocked by leaves."},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCaption(tt.raw))
		})
	}
}

func TestMergeNotes(t *testing.T) {
	assert.Equal(t, "Debris on sidewalk.", MergeNotes("", "Debris on sidewalk."))
	assert.Equal(t, "Crew arrived late.\n[AI]: Debris on sidewalk.", MergeNotes("Crew arrived late.", "Debris on sidewalk."))
	assert.Equal(t, "Crew arrived late.", MergeNotes("Crew arrived late.", ""))
}

func TestDecodeDataURI(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte{0x89, 0x50, 0x4E, 0x47})

	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, data)
}

func TestDecodeDataURIBarePayload(t *testing.T) {
	mimeType, data, err := DecodeDataURI("/9j/4A==")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0}, data)
}

func TestDecodeDataURIErrors(t *testing.T) {
	_, _, err := DecodeDataURI("data:image/png,rawbytes")
	assert.Error(t, err)

	_, _, err = DecodeDataURI("data:image/png;base64,***")
	assert.Error(t, err)
}
