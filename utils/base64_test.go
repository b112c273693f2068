package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURLRoundTrip(t *testing.T) {
	url := DataURL("image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.Contains(t, url, "data:image/png;base64,")

	mime, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestDataURLDefaultsMIME(t *testing.T) {
	url := DataURL("", []byte("x"))
	mime, _, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mime)
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"not a url",
		"data:image/png,missing-encoding",
		"data:image/png;base64,%%%",
	} {
		_, _, err := DecodeDataURL(s)
		assert.Error(t, err, s)
	}
}
