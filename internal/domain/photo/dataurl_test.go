package photo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMime string
		wantData string
		wantErr  bool
	}{
		{name: "png", in: "data:image/png;base64,aGVsbG8=", wantMime: "image/png", wantData: "hello"},
		{name: "no mime", in: "data:;base64,aGk=", wantMime: "application/octet-stream", wantData: "hi"},
		{name: "not a data url", in: "https://example.com/a.png", wantErr: true},
		{name: "no payload", in: "data:image/png;base64", wantErr: true},
		{name: "not base64", in: "data:text/plain,hello", wantErr: true},
		{name: "broken base64", in: "data:image/png;base64,@@@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := ParseDataURL(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDataURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, mime)
			assert.Equal(t, tt.wantData, string(data))
		})
	}
}

func TestEncodeDataURL_RoundTrip(t *testing.T) {
	url := EncodeDataURL("image/jpeg", []byte{0xff, 0xd8, 0xff})
	mime, data, err := ParseDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", Extension("image/jpeg"))
	assert.Equal(t, "png", Extension("image/png"))
	assert.Equal(t, "bin", Extension("application/pdf"))
}
