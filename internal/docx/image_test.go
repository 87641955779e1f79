package docx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFitPage_WideImage_ClampsToPageWidth(t *testing.T) {
	cx, cy := FitPage(1200, 600)

	require.Equal(t, int64(maxImageWidthEMU), cx)
	require.Equal(t, int64(maxImageWidthEMU/2), cy)
}

func TestFitPage_TallImage_ClampsToPageHeight(t *testing.T) {
	cx, cy := FitPage(600, 1200)

	require.Equal(t, int64(maxImageHeightEMU), cy)
	require.Equal(t, int64(maxImageHeightEMU/2), cx)
}

func TestFitPage_SquareImage_FillsPageWidth(t *testing.T) {
	cx, cy := FitPage(100, 100)

	require.Equal(t, int64(maxImageWidthEMU), cx)
	require.Equal(t, cx, cy)
}

func TestFitPage_DegenerateDimensions_StillPositive(t *testing.T) {
	cx, cy := FitPage(0, 0)

	require.Positive(t, cx)
	require.Positive(t, cy)
}

func TestInspect_PNGHeader_ReturnsDimensions(t *testing.T) {
	info, err := Inspect(tinyPNG(t))

	require.NoError(t, err)
	require.Equal(t, "png", info.Format)
	require.Equal(t, 4, info.Width)
	require.Equal(t, 2, info.Height)
}

func TestInspect_Garbage_ReturnsError(t *testing.T) {
	_, err := Inspect([]byte("not an image"))

	require.Error(t, err)
}
