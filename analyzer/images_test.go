package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImages(t *testing.T) {
	v := view(t, `<html><body>
		<img src="/a.png" alt="A picture" width="640" height="480" loading="lazy">
		<img src="/b.png" alt="" title="decorative">
		<img src="/c.png">
		<img src="">
		<img alt="no src">
		<img src="/hidden.png" hidden>
	</body></html>`)

	images := ExtractImages(v)
	require.Len(t, images, 3)

	a := images[0]
	assert.Equal(t, "/a.png", a.Src)
	require.NotNil(t, a.Alt)
	assert.Equal(t, "A picture", *a.Alt)
	require.NotNil(t, a.Width)
	assert.Equal(t, 640, *a.Width)
	require.NotNil(t, a.Height)
	assert.Equal(t, 480, *a.Height)
	assert.Equal(t, "lazy", a.Loading)

	b := images[1]
	require.NotNil(t, b.Alt)
	assert.Equal(t, "", *b.Alt)
	assert.Equal(t, "decorative", b.Title)
	assert.Nil(t, b.Width)

	c := images[2]
	assert.Nil(t, c.Alt)
	assert.Empty(t, c.Loading)
}

func TestExtractImagesDropsUnknownLoading(t *testing.T) {
	v := view(t, `<html><body>
		<img src="/a.png" loading="auto">
		<img src="/b.png" loading="EAGER">
	</body></html>`)

	images := ExtractImages(v)
	require.Len(t, images, 2)
	assert.Empty(t, images[0].Loading)
	assert.Equal(t, "eager", images[1].Loading)
}

func TestExtractImagesBadDimensions(t *testing.T) {
	v := view(t, `<html><body><img src="/a.png" width="100%" height="auto"></body></html>`)

	images := ExtractImages(v)
	require.Len(t, images, 1)
	assert.Nil(t, images[0].Width)
	assert.Nil(t, images[0].Height)
}
